// backend/internal/trivia/handler.go
package trivia

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the trivia endpoints on router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/categories", h.GetCategories).Methods(http.MethodGet)
	router.HandleFunc("/categories/{id}/questions", h.GetQuestionsByCategory).Methods(http.MethodGet)

	router.HandleFunc("/questions", h.GetQuestions).Methods(http.MethodGet)
	router.HandleFunc("/questions", h.CreateQuestion).Methods(http.MethodPost)
	// Registered before /questions/{id} so "search" is not parsed as an id.
	router.HandleFunc("/questions/search", h.SearchQuestions).Methods(http.MethodPost)
	router.HandleFunc("/questions/{id}", h.GetQuestion).Methods(http.MethodGet)
	router.HandleFunc("/questions/{id}", h.UpdateQuestion).Methods(http.MethodPatch)
	router.HandleFunc("/questions/{id}", h.DeleteQuestion).Methods(http.MethodDelete)

	router.HandleFunc("/quizzes", h.PlayQuiz).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed)
	})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	if len(categories) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": models.CategoryMap(categories),
	})
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.service.ListQuestions(r.Context(), page)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if result.Empty() {
		writeError(w, http.StatusNotFound)
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       models.ToDTOs(result.Questions),
		"total_questions": result.Total,
		"categories":      models.CategoryMap(categories),
		"currentCategory": nil,
	})
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	question, err := h.service.GetQuestion(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question.ToDTO(),
	})
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if page < 1 {
		h.handleError(w, fmt.Errorf("page %d: %w", page, apperrors.ErrValidation))
		return
	}

	var req models.CreateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	question, err := h.service.CreateQuestion(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.service.ListQuestions(r.Context(), page)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         question.ID,
		"questions":       models.ToDTOs(result.Questions),
		"total_questions": result.Total,
	})
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req models.UpdateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), id, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"updated":  question.ID,
		"question": question.ToDTO(),
	})
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

func (h *Handler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req models.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}
	if req.SearchTerm == nil {
		h.handleError(w, fmt.Errorf("missing searchTerm: %w", apperrors.ErrValidation))
		return
	}

	result, err := h.service.SearchQuestions(r.Context(), *req.SearchTerm, page)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if result.Empty() {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        models.ToDTOs(result.Questions),
		"total_questions":  result.Total,
		"current_category": nil,
	})
}

func (h *Handler) GetQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}
	page, err := pageParam(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.service.QuestionsByCategory(r.Context(), categoryID, page)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       models.ToDTOs(result.Questions),
		"total_questions": result.Total,
		"currentCategory": categoryID,
	})
}

func (h *Handler) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.QuizRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	question, err := h.service.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var dto *models.QuestionDTO
	if question != nil {
		d := question.ToDTO()
		dto = &d
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": dto,
	})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		writeError(w, http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(w, http.StatusNotFound)
	case errors.Is(err, apperrors.ErrUnprocessable):
		log.Printf("Unprocessable request: %v", err)
		writeError(w, http.StatusUnprocessableEntity)
	default:
		log.Printf("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError)
	}
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func writeError(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   status,
		"message": errorMessages[status],
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func decodeJSON(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, apperrors.ErrValidation)
	}
	return nil
}

func idParam(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, apperrors.ErrValidation)
	}
	return uint(id), nil
}

// pageParam reads ?page=, defaulting to 1. Range checks belong to the paginator.
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid page %q: %w", raw, apperrors.ErrValidation)
	}
	return page, nil
}
