package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ujeverson/api-provas/internal/exam"
	appI18n "github.com/Ujeverson/api-provas/internal/i18n"
	"github.com/Ujeverson/api-provas/internal/model"
	"github.com/Ujeverson/api-provas/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	svc   *exam.Service
	store *store.Store
	auth  *AuthService
}

// New creates a new Handler.
func New(svc *exam.Service, s *store.Store, auth *AuthService) *Handler {
	return &Handler{svc: svc, store: s, auth: auth}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(h.auth.Middleware)

		pr.Post("/generate-exam", h.handleGenerateExam)
		pr.Get("/exams/{examID}", h.handleGetExam)
		pr.Get("/answer-keys/{examID}", h.handleGetAnswerKey)

		pr.With(requireRole(model.UserRoleAdmin)).Delete("/exams/{examID}", h.handleDeleteExam)
		pr.With(requireRole(model.UserRoleAdmin)).Get("/users", h.handleListUsers)
		pr.With(requireRole(model.UserRoleAdmin)).Post("/users", h.handleCreateUser)
	})
}

// questionResponse serializes a question. Type and difficulty stay as their
// enum tokens; only criteria-level fields carry display labels.
type questionResponse struct {
	ID         int64    `json:"id"`
	Type       string   `json:"type"`
	Prompt     string   `json:"prompt"`
	Choices    []string `json:"choices,omitempty"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty,omitempty"`
}

type examResponse struct {
	ID             int64              `json:"id"`
	Topic          string             `json:"topic"`
	Difficulty     string             `json:"difficulty"`
	QuestionCount  int                `json:"question_count"`
	RequestedTypes string             `json:"requested_types"`
	Curriculum     string             `json:"curriculum,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	Questions      []questionResponse `json:"questions"`
}

func (h *Handler) examToResponse(r *http.Request, e model.Exam) examResponse {
	ctx := r.Context()
	resp := examResponse{
		ID:             e.Criteria.ID,
		Topic:          e.Criteria.Topic,
		Difficulty:     appI18n.DifficultyLabel(ctx, e.Criteria.Difficulty),
		QuestionCount:  e.Criteria.QuestionCount,
		RequestedTypes: appI18n.TypesLabel(ctx, e.Criteria.QuestionTypes),
		Curriculum:     e.Criteria.Curriculum,
		CreatedAt:      e.Criteria.CreatedAt,
		Questions:      []questionResponse{},
	}
	for _, q := range e.Questions {
		resp.Questions = append(resp.Questions, questionResponse{
			ID:         q.ID,
			Type:       string(q.Type),
			Prompt:     q.Prompt,
			Choices:    q.Choices,
			Answer:     q.Answer,
			Difficulty: string(q.Difficulty),
		})
	}
	return resp
}

func (h *Handler) handleGenerateExam(w http.ResponseWriter, r *http.Request) {
	var req exam.CriteriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	e, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.examToResponse(r, e))
}

func (h *Handler) handleGetExam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "examID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid exam ID")
		return
	}
	e, err := h.svc.GetExam(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.examToResponse(r, e))
}

func (h *Handler) handleGetAnswerKey(w http.ResponseWriter, r *http.Request) {
	examID, err := strconv.ParseInt(chi.URLParam(r, "examID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid exam ID")
		return
	}
	key, err := h.svc.GetAnswerKey(r.Context(), examID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, key)
}

func (h *Handler) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "examID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid exam ID")
		return
	}
	if err := h.svc.DeleteExam(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps pipeline errors onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *exam.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verr.Fields})
		return
	}
	var gerr *exam.GenerationError
	if errors.As(err, &gerr) {
		slog.Error("generation service failure", "error", gerr.Err)
		writeJSONError(w, http.StatusBadGateway, "generation service unavailable")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	slog.Error("request failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
