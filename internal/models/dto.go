// backend/internal/models/dto.go
package models

// QuestionDTO is the wire shape of a question.
type QuestionDTO struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func (q Question) ToDTO() QuestionDTO {
	return QuestionDTO{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func ToDTOs(questions []Question) []QuestionDTO {
	dtos := make([]QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = q.ToDTO()
	}
	return dtos
}

// CreateQuestionRequest uses pointers so a missing field can be told apart
// from a zero value.
type CreateQuestionRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *uint   `json:"category"`
	Difficulty *int    `json:"difficulty"`
}

type UpdateQuestionRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *uint   `json:"category"`
	Difficulty *int    `json:"difficulty"`
}

type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type QuizCategory struct {
	Type string `json:"type"`
	ID   uint   `json:"id"`
}

type QuizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// AllCategories reports whether the request asks for questions from every
// category. The front-end sends type "click" with id 0 for its ALL button.
func (c QuizCategory) AllCategories() bool {
	return c.ID == 0 || c.Type == "click"
}
