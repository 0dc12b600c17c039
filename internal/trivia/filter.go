package trivia

import (
	"strings"

	"gorm.io/gorm"

	"trivia-api/internal/models"
	"trivia-api/pkg/database"
)

// QuestionFilter narrows a question listing. The zero value matches every question.
type QuestionFilter struct {
	// Category restricts to one category; 0 means all categories.
	Category uint
	// SearchTerm is matched case-insensitively as a substring of the question text.
	SearchTerm string
	// ExcludeIDs drops questions already shown.
	ExcludeIDs []uint
}

// Window is an offset/limit slice of an ordered listing. Limit 0 is unbounded.
type Window struct {
	Offset int
	Limit  int
}

// Scopes returns the gorm scopes equivalent to Matches.
func (f QuestionFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if f.Category != 0 {
		category := f.Category
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("category = ?", category)
		})
	}
	if f.SearchTerm != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.SearchTerm)) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(searchCondition(db.Dialector.Name()), pattern)
		})
	}
	if len(f.ExcludeIDs) > 0 {
		ids := f.ExcludeIDs
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("id NOT IN ?", ids)
		})
	}
	return scopes
}

// Matches reports whether q passes the filter.
func (f QuestionFilter) Matches(q models.Question) bool {
	if f.Category != 0 && q.Category != f.Category {
		return false
	}
	if f.SearchTerm != "" && !strings.Contains(strings.ToLower(q.Question), strings.ToLower(f.SearchTerm)) {
		return false
	}
	for _, id := range f.ExcludeIDs {
		if q.ID == id {
			return false
		}
	}
	return true
}

func (w Window) scope(db *gorm.DB) *gorm.DB {
	if w.Offset > 0 {
		db = db.Offset(w.Offset)
	}
	if w.Limit > 0 {
		db = db.Limit(w.Limit)
	}
	return db
}

// searchCondition folds case on the column the same way Matches does.
func searchCondition(dialect string) string {
	switch dialect {
	case "postgres":
		return "question ILIKE ? ESCAPE '\\'"
	case "sqlite":
		return database.UnicodeLowerFunc + "(question) LIKE ? ESCAPE '\\'"
	default:
		return "LOWER(question) LIKE ? ESCAPE '\\'"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
