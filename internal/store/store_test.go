package store

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/Ujeverson/api-provas/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testCriteria = model.ExamCriteria{
	Topic:         "Revolução Francesa",
	Difficulty:    model.DifficultyEntender,
	QuestionCount: 2,
	QuestionTypes: []model.QuestionType{model.TypeMultiplaEscolha, model.TypeDissertativa},
	Curriculum:    "História geral",
}

var testGenerated = []model.GeneratedQuestion{
	{
		Type:       model.TypeMultiplaEscolha,
		Prompt:     "Em que ano começou a Revolução Francesa?",
		Choices:    []string{"1789", "1799", "1804", "1815"},
		Answer:     "1789",
		Difficulty: model.DifficultyLembrar,
	},
	{
		Type:   model.TypeDissertativa,
		Prompt: "Explique as causas da Revolução Francesa.",
		Answer: "Crise financeira, desigualdade social e ideias iluministas.",
	},
}

func TestCreateExam(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exam, err := s.CreateExam(ctx, testCriteria, testGenerated)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if exam.Criteria.ID == 0 {
		t.Error("expected non-zero exam id")
	}
	if exam.Criteria.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if len(exam.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(exam.Questions))
	}
	for _, q := range exam.Questions {
		if q.ID == 0 {
			t.Error("expected non-zero question id")
		}
		if q.ExamID != exam.Criteria.ID {
			t.Errorf("question %d belongs to exam %d, want %d", q.ID, q.ExamID, exam.Criteria.ID)
		}
	}

	key, err := s.GetAnswerKey(ctx, exam.Criteria.ID)
	if err != nil {
		t.Fatalf("GetAnswerKey: %v", err)
	}
	if key.ExamID != exam.Criteria.ID {
		t.Errorf("answer key exam id = %d, want %d", key.ExamID, exam.Criteria.ID)
	}
	if len(key.Answers) != len(exam.Questions) {
		t.Fatalf("answer key has %d entries, want %d", len(key.Answers), len(exam.Questions))
	}
	for _, q := range exam.Questions {
		if got := key.Answers[strconv.FormatInt(q.ID, 10)]; got != q.Answer {
			t.Errorf("question %d: answer key has %q, want %q", q.ID, got, q.Answer)
		}
	}
}

func TestCreateExamNoQuestions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exam, err := s.CreateExam(ctx, testCriteria, nil)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if len(exam.Questions) != 0 {
		t.Fatalf("expected 0 questions, got %d", len(exam.Questions))
	}

	key, err := s.GetAnswerKey(ctx, exam.Criteria.ID)
	if err != nil {
		t.Fatalf("GetAnswerKey: %v", err)
	}
	if len(key.Answers) != 0 {
		t.Errorf("expected empty answer key, got %v", key.Answers)
	}
}

func TestGetExam(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateExam(ctx, testCriteria, testGenerated)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}

	got, err := s.GetExam(ctx, created.Criteria.ID)
	if err != nil {
		t.Fatalf("GetExam: %v", err)
	}
	if got.Criteria.Topic != testCriteria.Topic {
		t.Errorf("topic = %q, want %q", got.Criteria.Topic, testCriteria.Topic)
	}
	if got.Criteria.Difficulty != testCriteria.Difficulty {
		t.Errorf("difficulty = %q, want %q", got.Criteria.Difficulty, testCriteria.Difficulty)
	}
	if got.Criteria.Curriculum != testCriteria.Curriculum {
		t.Errorf("curriculum = %q, want %q", got.Criteria.Curriculum, testCriteria.Curriculum)
	}
	if len(got.Criteria.QuestionTypes) != 2 ||
		got.Criteria.QuestionTypes[0] != model.TypeMultiplaEscolha ||
		got.Criteria.QuestionTypes[1] != model.TypeDissertativa {
		t.Errorf("question types = %v", got.Criteria.QuestionTypes)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got.Questions))
	}

	mc := got.Questions[0]
	if len(mc.Choices) != 4 || mc.Choices[0] != "1789" {
		t.Errorf("choices = %v", mc.Choices)
	}
	if mc.Difficulty != model.DifficultyLembrar {
		t.Errorf("difficulty = %q, want lembrar", mc.Difficulty)
	}

	essay := got.Questions[1]
	if essay.Choices != nil {
		t.Errorf("essay question should have no choices, got %v", essay.Choices)
	}
	if essay.Difficulty != "" {
		t.Errorf("essay difficulty = %q, want empty", essay.Difficulty)
	}
}

func TestGetExamNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetExam(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAnswerKeyNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetAnswerKey(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteExam(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateExam(ctx, testCriteria, testGenerated)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if err := s.DeleteExam(ctx, created.Criteria.ID); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}
	if _, err := s.GetExam(ctx, created.Criteria.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("exam still readable after delete: %v", err)
	}
	if _, err := s.GetAnswerKey(ctx, created.Criteria.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("answer key survived cascade: %v", err)
	}
}

func TestDeleteExamNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteExam(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListExamIDsAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.ListExamIDs(ctx)
	if err != nil {
		t.Fatalf("ListExamIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no exams, got %v", ids)
	}

	first, _ := s.CreateExam(ctx, testCriteria, nil)
	second, _ := s.CreateExam(ctx, testCriteria, nil)

	ids, err = s.ListExamIDs(ctx)
	if err != nil {
		t.Fatalf("ListExamIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != first.Criteria.ID || ids[1] != second.Criteria.ID {
		t.Errorf("ids = %v, want [%d %d]", ids, first.Criteria.ID, second.Criteria.ID)
	}

	count, err := s.ExamCount(ctx)
	if err != nil {
		t.Fatalf("ExamCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.UserCount(ctx)
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty users table, got %d", count)
	}

	id, err := s.CreateUser(ctx, model.User{
		Username:     "maria",
		PasswordHash: "$2a$10$fakehash",
		Role:         model.UserRoleTeacher,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero user id")
	}

	u, err := s.GetUserByUsername(ctx, "maria")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u == nil {
		t.Fatal("expected user, got nil")
	}
	if u.Role != model.UserRoleTeacher || !u.Active {
		t.Errorf("user = %+v", u)
	}

	missing, err := s.GetUserByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}

	if _, err := s.CreateUser(ctx, model.User{
		Username:     "maria",
		PasswordHash: "$2a$10$otherhash",
		Role:         model.UserRoleAdmin,
		Active:       true,
	}); err == nil {
		t.Error("expected unique-constraint error for duplicate username")
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestExportAllExams(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exams, err := s.ExportAllExams(ctx)
	if err != nil {
		t.Fatalf("ExportAllExams: %v", err)
	}
	if len(exams) != 0 {
		t.Fatalf("expected no exported exams, got %d", len(exams))
	}

	created, err := s.CreateExam(ctx, testCriteria, testGenerated)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}

	exams, err = s.ExportAllExams(ctx)
	if err != nil {
		t.Fatalf("ExportAllExams: %v", err)
	}
	if len(exams) != 1 {
		t.Fatalf("expected 1 exported exam, got %d", len(exams))
	}
	exported := exams[0]
	if exported.ID != created.Criteria.ID {
		t.Errorf("id = %d, want %d", exported.ID, created.Criteria.ID)
	}
	if exported.Topic != testCriteria.Topic {
		t.Errorf("topic = %q, want %q", exported.Topic, testCriteria.Topic)
	}
	if len(exported.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(exported.Questions))
	}
	if len(exported.AnswerKey) != 2 {
		t.Errorf("expected 2 answer-key entries, got %d", len(exported.AnswerKey))
	}
}
