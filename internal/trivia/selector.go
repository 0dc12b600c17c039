package trivia

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
)

// Selector draws the next quiz question a player has not seen yet.
type Selector struct {
	store Store

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(store Store) *Selector {
	return NewSelectorWithRand(store, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSelectorWithRand is NewSelector with a caller-supplied random source.
func NewSelectorWithRand(store Store, rng *rand.Rand) *Selector {
	return &Selector{store: store, rng: rng}
}

// SelectNext returns a question uniformly drawn from the questions in
// category (0 for all categories) whose ids are not in previousIDs.
// It returns nil, nil when no such question is left.
func (s *Selector) SelectNext(ctx context.Context, previousIDs []uint, category uint) (*models.Question, error) {
	candidates, err := s.store.ListQuestionIDs(ctx, QuestionFilter{
		Category:   category,
		ExcludeIDs: previousIDs,
	})
	if err != nil {
		return nil, err
	}

	for len(candidates) > 0 {
		i := s.intn(len(candidates))
		question, err := s.store.GetQuestion(ctx, candidates[i])
		if err == nil {
			return question, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		// Deleted after the id listing; it is no longer eligible.
		log.Printf("Question %d vanished during selection, drawing again", candidates[i])
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
	return nil, nil
}

// *rand.Rand is not safe for concurrent use.
func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
