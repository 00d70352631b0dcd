package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ujeverson/api-provas/internal/model"
)

// ExportAllExams builds export-ready records for every exam, with questions
// and answer key. An exam without an answer key (should not happen, given
// transactional creation) exports with an empty map.
func (s *Store) ExportAllExams(ctx context.Context) ([]model.ExportedExam, error) {
	ids, err := s.ListExamIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	var exams []model.ExportedExam
	for _, id := range ids {
		e, err := s.GetExam(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get exam %d: %w", id, err)
		}

		answers := map[string]string{}
		key, err := s.GetAnswerKey(ctx, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("get answer key for exam %d: %w", id, err)
		}
		if err == nil {
			answers = key.Answers
		}

		exams = append(exams, model.ExportedExam{
			ID:            e.Criteria.ID,
			Topic:         e.Criteria.Topic,
			Difficulty:    e.Criteria.Difficulty,
			QuestionCount: e.Criteria.QuestionCount,
			QuestionTypes: e.Criteria.QuestionTypes,
			Curriculum:    e.Criteria.Curriculum,
			CreatedAt:     e.Criteria.CreatedAt,
			Questions:     e.Questions,
			AnswerKey:     answers,
		})
	}
	return exams, nil
}
