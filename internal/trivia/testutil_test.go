package trivia

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trivia-api/internal/config"
	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
	"trivia-api/pkg/database"
)

// newTestDB opens a migrated in-memory sqlite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(&config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedCategories inserts the default categories and returns them in id order.
func seedCategories(t *testing.T, db *gorm.DB) []models.Category {
	t.Helper()
	_, err := database.SeedCategories(context.Background(), db)
	require.NoError(t, err)

	var categories []models.Category
	require.NoError(t, db.Order("id").Find(&categories).Error)
	return categories
}

// seedQuestions creates n questions in category and returns them in creation order.
func seedQuestions(t *testing.T, repo *Repository, n int, category uint) []models.Question {
	t.Helper()
	out := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{
			Question:   fmt.Sprintf("Question %d of category %d?", i+1, category),
			Answer:     fmt.Sprintf("Answer %d", i+1),
			Category:   category,
			Difficulty: i%5 + 1,
		}
		require.NoError(t, repo.CreateQuestion(context.Background(), &q))
		out = append(out, q)
	}
	return out
}

// memStore is a map-backed Store driven by QuestionFilter.Matches.
type memStore struct {
	mu         sync.Mutex
	nextID     uint
	questions  map[uint]models.Question
	categories map[uint]models.Category

	// beforeGet, when set, runs at the start of GetQuestion.
	beforeGet func(id uint)
}

func newMemStore(categories ...string) *memStore {
	s := &memStore{
		questions:  make(map[uint]models.Question),
		categories: make(map[uint]models.Category),
	}
	for i, name := range categories {
		id := uint(i + 1)
		s.categories[id] = models.Category{ID: id, Type: name}
	}
	return s
}

func (s *memStore) add(question, answer string, category uint) models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	q := models.Question{ID: s.nextID, Question: question, Answer: answer, Category: category, Difficulty: 1}
	s.questions[q.ID] = q
	return q
}

func (s *memStore) sorted(filter QuestionFilter) []models.Question {
	var out []models.Question
	for _, q := range s.questions {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) ListQuestions(_ context.Context, filter QuestionFilter, window Window) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.sorted(filter)
	if window.Offset >= len(all) {
		return []models.Question{}, nil
	}
	all = all[window.Offset:]
	if window.Limit > 0 && window.Limit < len(all) {
		all = all[:window.Limit]
	}
	return all, nil
}

func (s *memStore) CountQuestions(_ context.Context, filter QuestionFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sorted(filter))), nil
}

func (s *memStore) ListQuestionIDs(_ context.Context, filter QuestionFilter) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for _, q := range s.sorted(filter) {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (s *memStore) GetQuestion(_ context.Context, id uint) (*models.Question, error) {
	if s.beforeGet != nil {
		s.beforeGet(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

func (s *memStore) CreateQuestion(_ context.Context, question *models.Question) error {
	created := s.add(question.Question, question.Answer, question.Category)
	question.ID = created.ID
	return nil
}

func (s *memStore) UpdateQuestion(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[question.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.questions[question.ID] = *question
	return nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetCategory(_ context.Context, id uint) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}
