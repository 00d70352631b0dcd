package exam

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/Ujeverson/api-provas/internal/store"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(t *testing.T, gen Generator) (*Service, *store.Store) {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewService(s, gen), s
}

var validRequest = CriteriaRequest{
	Topic:          "Teste",
	Difficulty:     "lembrar",
	QuestionCount:  2,
	RequestedTypes: "multipla_escolha,dissertativa",
}

func TestServiceGenerate(t *testing.T) {
	ctx := ptContext(t)
	gen := &fakeGenerator{reply: wellFormedReply}
	svc, db := newTestService(t, gen)

	e, err := svc.Generate(ctx, validRequest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if e.Criteria.ID == 0 {
		t.Error("expected persisted criteria id")
	}
	if len(e.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(e.Questions))
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gen.prompts))
	}

	key, err := db.GetAnswerKey(ctx, e.Criteria.ID)
	if err != nil {
		t.Fatalf("GetAnswerKey: %v", err)
	}
	if len(key.Answers) != 2 {
		t.Fatalf("expected 2 answer-key entries, got %d", len(key.Answers))
	}
	for _, q := range e.Questions {
		answer, ok := key.Answers[strconv.FormatInt(q.ID, 10)]
		if !ok {
			t.Errorf("answer key missing question %d", q.ID)
			continue
		}
		if answer != q.Answer {
			t.Errorf("question %d: key has %q, question has %q", q.ID, answer, q.Answer)
		}
	}
}

func TestServiceGenerateInvalidCriteria(t *testing.T) {
	ctx := ptContext(t)
	gen := &fakeGenerator{reply: wellFormedReply}
	svc, db := newTestService(t, gen)

	_, err := svc.Generate(ctx, CriteriaRequest{Topic: "", Difficulty: "x", QuestionCount: 0})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Error("generation service must not be called for invalid criteria")
	}
	if count, _ := db.ExamCount(ctx); count != 0 {
		t.Errorf("expected nothing persisted, got %d exams", count)
	}
}

func TestServiceGenerateServiceFailure(t *testing.T) {
	ctx := ptContext(t)
	gen := &fakeGenerator{err: errors.New("connection refused")}
	svc, db := newTestService(t, gen)

	_, err := svc.Generate(ctx, validRequest)
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if count, _ := db.ExamCount(ctx); count != 0 {
		t.Errorf("generation failure must persist nothing, got %d exams", count)
	}
}

func TestServiceGenerateUnparseableReply(t *testing.T) {
	ctx := ptContext(t)
	gen := &fakeGenerator{reply: "desculpe, não consegui gerar as questões"}
	svc, db := newTestService(t, gen)

	e, err := svc.Generate(ctx, validRequest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(e.Questions) != 0 {
		t.Fatalf("expected 0 questions, got %d", len(e.Questions))
	}

	key, err := db.GetAnswerKey(ctx, e.Criteria.ID)
	if err != nil {
		t.Fatalf("GetAnswerKey: %v", err)
	}
	if len(key.Answers) != 0 {
		t.Errorf("expected empty answer key, got %v", key.Answers)
	}
}

func TestServiceGeneratePartialReply(t *testing.T) {
	ctx := ptContext(t)
	gen := &fakeGenerator{reply: `{
		"questoes": [
			{"tipo": "dissertativa", "enunciado": "Boa", "resposta": "R"},
			{"tipo": "dissertativa", "enunciado": "Sem resposta"}
		]
	}`}
	svc, _ := newTestService(t, gen)

	e, err := svc.Generate(ctx, validRequest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(e.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(e.Questions))
	}
}

func TestServiceGetExamNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeGenerator{})

	if _, err := svc.GetExam(ctx, 404); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetAnswerKey(ctx, 404); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
