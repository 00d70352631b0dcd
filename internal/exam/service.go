package exam

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ujeverson/api-provas/internal/model"
	"github.com/Ujeverson/api-provas/internal/store"
)

// Generator produces raw completion text for a prompt. The production
// implementation is llm.Client; tests substitute a double.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service runs the exam-generation pipeline and fronts the store for reads.
type Service struct {
	store *store.Store
	gen   Generator
}

// NewService creates a Service.
func NewService(s *store.Store, g Generator) *Service {
	return &Service{store: s, gen: g}
}

// Generate validates the request, renders the prompt, calls the generation
// service, parses its reply, and persists criteria, questions, and answer key
// in a single transaction. Generation happens before any write, so a
// generation failure persists nothing. An unusable reply is not an error:
// the exam is created with zero questions and an empty answer key.
func (s *Service) Generate(ctx context.Context, req CriteriaRequest) (model.Exam, error) {
	criteria, err := ValidateCriteria(req)
	if err != nil {
		return model.Exam{}, err
	}

	prompt := BuildPrompt(ctx, criteria)
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return model.Exam{}, &GenerationError{Err: err}
	}

	questions := ParseReply(raw)
	if len(questions) == 0 {
		slog.Warn("generation reply yielded no usable questions",
			"topic", criteria.Topic, "requested", criteria.QuestionCount)
	}

	exam, err := s.store.CreateExam(ctx, criteria, questions)
	if err != nil {
		return model.Exam{}, fmt.Errorf("persist exam: %w", err)
	}
	slog.Info("exam generated",
		"exam_id", exam.Criteria.ID,
		"topic", exam.Criteria.Topic,
		"questions", len(exam.Questions))
	return exam, nil
}

// GetExam returns an exam with its questions, or store.ErrNotFound.
func (s *Service) GetExam(ctx context.Context, id int64) (model.Exam, error) {
	return s.store.GetExam(ctx, id)
}

// GetAnswerKey returns the answer key owned by the given exam,
// or store.ErrNotFound.
func (s *Service) GetAnswerKey(ctx context.Context, examID int64) (model.AnswerKey, error) {
	return s.store.GetAnswerKey(ctx, examID)
}

// DeleteExam removes an exam; questions and answer key go with it.
func (s *Service) DeleteExam(ctx context.Context, id int64) error {
	return s.store.DeleteExam(ctx, id)
}
