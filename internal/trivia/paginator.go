package trivia

import (
	"context"
	"fmt"

	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
)

// QuestionsPerPage is the fixed page size of every question listing.
const QuestionsPerPage = 10

// Page is one slice of a filtered question listing.
type Page struct {
	Questions []models.Question
	// Total counts every question matching the filter, not just this page.
	Total     int64
}

// Empty reports whether the page ran off the end of the listing.
func (p *Page) Empty() bool {
	return len(p.Questions) == 0
}

type Paginator struct {
	store    Store
	pageSize int
}

func NewPaginator(store Store) *Paginator {
	return &Paginator{store: store, pageSize: QuestionsPerPage}
}

// Paginate returns page (1-based) of the questions matching filter in
// ascending id order. A page past the end is empty, not an error.
func (p *Paginator) Paginate(ctx context.Context, page int, filter QuestionFilter) (*Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, apperrors.ErrValidation)
	}

	total, err := p.store.CountQuestions(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &Page{Total: total, Questions: []models.Question{}}
	size := int64(p.pageSize)
	if int64(page-1) >= (total+size-1)/size {
		return result, nil
	}

	offset := (page - 1) * p.pageSize
	questions, err := p.store.ListQuestions(ctx, filter, Window{Offset: offset, Limit: p.pageSize})
	if err != nil {
		return nil, err
	}
	result.Questions = questions
	return result, nil
}
