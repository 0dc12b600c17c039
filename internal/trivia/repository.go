// backend/internal/trivia/repository.go
package trivia

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
)

// Store is the persistence surface the selector, paginator and service need.
type Store interface {
	ListQuestions(ctx context.Context, filter QuestionFilter, window Window) ([]models.Question, error)
	CountQuestions(ctx context.Context, filter QuestionFilter) (int64, error)
	ListQuestionIDs(ctx context.Context, filter QuestionFilter) ([]uint, error)
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) questions(ctx context.Context, filter QuestionFilter) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Question{}).Scopes(filter.Scopes()...)
}

// ListQuestions returns the filtered questions in ascending id order.
func (r *Repository) ListQuestions(ctx context.Context, filter QuestionFilter, window Window) ([]models.Question, error) {
	var questions []models.Question
	err := r.questions(ctx, filter).
		Scopes(window.scope).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		log.Printf("Error listing questions: %v", err)
		return nil, err
	}
	return questions, nil
}

func (r *Repository) CountQuestions(ctx context.Context, filter QuestionFilter) (int64, error) {
	var count int64
	if err := r.questions(ctx, filter).Count(&count).Error; err != nil {
		log.Printf("Error counting questions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) ListQuestionIDs(ctx context.Context, filter QuestionFilter) ([]uint, error) {
	var ids []uint
	if err := r.questions(ctx, filter).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		log.Printf("Error listing question ids: %v", err)
		return nil, err
	}
	return ids, nil
}

func (r *Repository) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &question, nil
}

func (r *Repository) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return err
	}
	log.Printf("Created question with ID: %d", question.ID)
	return nil
}

// UpdateQuestion writes every column of question; the row must already exist.
func (r *Repository) UpdateQuestion(ctx context.Context, question *models.Question) error {
	result := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", question.ID).
		Select("question", "answer", "category", "difficulty").
		Updates(question)
	if result.Error != nil {
		log.Printf("Error updating question %d: %v", question.ID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", question.ID, apperrors.ErrNotFound)
	}
	log.Printf("Updated question with ID: %d", question.ID)
	return nil
}

func (r *Repository) DeleteQuestion(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		log.Printf("Error deleting question %d: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, apperrors.ErrNotFound)
	}
	log.Printf("Deleted question with ID: %d", id)
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		log.Printf("Error listing categories: %v", err)
		return nil, err
	}
	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
