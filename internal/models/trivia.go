// backend/internal/models/trivia.go
package models

import (
	"time"
)

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Type      string    `json:"type" gorm:"not null;uniqueIndex"`
}

type Question struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
	Question   string    `json:"question" gorm:"not null"`
	Answer     string    `json:"answer" gorm:"not null"`
	Category   uint      `json:"category" gorm:"not null;index"`
	Difficulty int       `json:"difficulty" gorm:"not null;default:1"`
}

// CategoryMap renders categories the way the front-end consumes them: id -> type.
func CategoryMap(categories []Category) map[uint]string {
	out := make(map[uint]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
