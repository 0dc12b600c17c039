// backend/internal/trivia/service.go
package trivia

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
)

// CategoryCache keeps the category listing out of the database on hot paths.
// A miss is reported as an error.
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, categories []models.Category) error
}

// Notifier receives question change events.
type Notifier interface {
	BroadcastMessage(messageType string, data interface{})
}

const (
	EventQuestionCreated = "question_created"
	EventQuestionUpdated = "question_updated"
	EventQuestionDeleted = "question_deleted"
)

type Service struct {
	store     Store
	selector  *Selector
	paginator *Paginator
	cache     CategoryCache
	notifier  Notifier
}

// NewService wires the selector and paginator over store. cache and notifier may be nil.
func NewService(store Store, cache CategoryCache, notifier Notifier) *Service {
	return &Service{
		store:     store,
		selector:  NewSelector(store),
		paginator: NewPaginator(store),
		cache:     cache,
		notifier:  notifier,
	}
}

// WithSelector replaces the default selector, mostly to pin its random source.
func (s *Service) WithSelector(selector *Selector) *Service {
	s.selector = selector
	return s
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		categories, err := s.cache.GetCategories(ctx)
		if err == nil {
			return categories, nil
		}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			log.Printf("Error caching categories: %v", err)
		}
	}
	return categories, nil
}

func (s *Service) ListQuestions(ctx context.Context, page int) (*Page, error) {
	return s.paginator.Paginate(ctx, page, QuestionFilter{})
}

// QuestionsByCategory pages through one category; an unknown category is ErrNotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID uint, page int) (*Page, error) {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.paginator.Paginate(ctx, page, QuestionFilter{Category: categoryID})
}

func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (*Page, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty search term: %w", apperrors.ErrValidation)
	}
	return s.paginator.Paginate(ctx, page, QuestionFilter{SearchTerm: term})
}

func (s *Service) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	return s.store.GetQuestion(ctx, id)
}

func (s *Service) CreateQuestion(ctx context.Context, req models.CreateQuestionRequest) (*models.Question, error) {
	switch {
	case req.Question == nil:
		return nil, fmt.Errorf("missing question: %w", apperrors.ErrValidation)
	case req.Answer == nil:
		return nil, fmt.Errorf("missing answer: %w", apperrors.ErrValidation)
	case req.Category == nil:
		return nil, fmt.Errorf("missing category: %w", apperrors.ErrValidation)
	case req.Difficulty == nil:
		return nil, fmt.Errorf("missing difficulty: %w", apperrors.ErrValidation)
	}

	question := &models.Question{
		Question:   strings.TrimSpace(*req.Question),
		Answer:     strings.TrimSpace(*req.Answer),
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	}
	if err := s.validate(ctx, question); err != nil {
		return nil, err
	}

	if err := s.store.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	s.notify(EventQuestionCreated, question.ToDTO())
	return question, nil
}

// UpdateQuestion applies the fields present in req to question id.
func (s *Service) UpdateQuestion(ctx context.Context, id uint, req models.UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Question != nil {
		question.Question = strings.TrimSpace(*req.Question)
	}
	if req.Answer != nil {
		question.Answer = strings.TrimSpace(*req.Answer)
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
	if err := s.validate(ctx, question); err != nil {
		return nil, err
	}

	if err := s.store.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}
	s.notify(EventQuestionUpdated, question.ToDTO())
	return question, nil
}

func (s *Service) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete question %d: %v: %w", id, err, apperrors.ErrUnprocessable)
	}
	s.notify(EventQuestionDeleted, map[string]uint{"id": id})
	return nil
}

// NextQuizQuestion returns a random unseen question, or nil once the quiz is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, req models.QuizRequest) (*models.Question, error) {
	if req.PreviousQuestions == nil {
		return nil, fmt.Errorf("missing previous_questions: %w", apperrors.ErrValidation)
	}
	if req.QuizCategory == nil {
		return nil, fmt.Errorf("missing quiz_category: %w", apperrors.ErrValidation)
	}

	var category uint
	if !req.QuizCategory.AllCategories() {
		category = req.QuizCategory.ID
	}
	return s.selector.SelectNext(ctx, req.PreviousQuestions, category)
}

func (s *Service) validate(ctx context.Context, question *models.Question) error {
	if question.Question == "" {
		return fmt.Errorf("empty question text: %w", apperrors.ErrValidation)
	}
	if question.Answer == "" {
		return fmt.Errorf("empty answer text: %w", apperrors.ErrValidation)
	}
	if _, err := s.store.GetCategory(ctx, question.Category); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("category %d does not exist: %w", question.Category, apperrors.ErrUnprocessable)
		}
		return err
	}
	return nil
}

func (s *Service) notify(event string, data interface{}) {
	if s.notifier != nil {
		s.notifier.BroadcastMessage(event, data)
	}
}
