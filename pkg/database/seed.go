package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"trivia-api/internal/models"
)

// DefaultCategories is the category set the trivia front-end ships icons for.
var DefaultCategories = []string{
	"Science",
	"Art",
	"Geography",
	"History",
	"Entertainment",
	"Sports",
}

// SeedCategories inserts DefaultCategories when the categories table is empty.
// It returns the number of rows inserted.
func SeedCategories(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		log.Printf("Categories already present (%d), skipping seed", count)
		return 0, nil
	}

	categories := make([]models.Category, len(DefaultCategories))
	for i, name := range DefaultCategories {
		categories[i] = models.Category{Type: name}
	}
	if err := db.WithContext(ctx).Create(&categories).Error; err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	log.Printf("Seeded %d categories", len(categories))
	return len(categories), nil
}
