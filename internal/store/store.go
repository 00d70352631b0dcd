package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ujeverson/api-provas/internal/model"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	PRAGMA foreign_keys=ON;

	CREATE TABLE IF NOT EXISTS exams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		difficulty TEXT NOT NULL CHECK (difficulty IN
			('lembrar','entender','aplicar','analisar','avaliar','criar')),
		question_count INTEGER NOT NULL CHECK (question_count > 0),
		question_types TEXT NOT NULL,
		curriculum TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exam_id INTEGER NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		type TEXT NOT NULL CHECK (type IN
			('multipla_escolha','dissertativa','verdadeiro_falso')),
		prompt TEXT NOT NULL,
		choices_json TEXT,
		answer TEXT NOT NULL,
		difficulty TEXT CHECK (difficulty IS NULL OR difficulty IN
			('lembrar','entender','aplicar','analisar','avaliar','criar'))
	);

	CREATE TABLE IF NOT EXISTS answer_keys (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exam_id INTEGER NOT NULL UNIQUE REFERENCES exams(id) ON DELETE CASCADE,
		answers_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateExam persists criteria, their questions, and the derived answer key
// as one transaction. The answer key maps each created question's id to its
// answer, so its keys are exactly the exam's question ids.
func (s *Store) CreateExam(ctx context.Context, criteria model.ExamCriteria, generated []model.GeneratedQuestion) (model.Exam, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Exam{}, err
	}
	defer tx.Rollback()

	criteria.CreatedAt = time.Now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO exams (topic, difficulty, question_count, question_types, curriculum, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		criteria.Topic, criteria.Difficulty, criteria.QuestionCount,
		joinTypes(criteria.QuestionTypes), criteria.Curriculum, criteria.CreatedAt,
	)
	if err != nil {
		return model.Exam{}, err
	}
	examID, err := res.LastInsertId()
	if err != nil {
		return model.Exam{}, err
	}
	criteria.ID = examID

	questions := make([]model.Question, 0, len(generated))
	answers := map[string]string{}
	for _, g := range generated {
		var choicesJSON sql.NullString
		if g.Choices != nil {
			buf, err := json.Marshal(g.Choices)
			if err != nil {
				return model.Exam{}, err
			}
			choicesJSON = sql.NullString{String: string(buf), Valid: true}
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO questions (exam_id, type, prompt, choices_json, answer, difficulty)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			examID, g.Type, g.Prompt, choicesJSON, g.Answer, nullDifficulty(g.Difficulty),
		)
		if err != nil {
			return model.Exam{}, err
		}
		qID, err := res.LastInsertId()
		if err != nil {
			return model.Exam{}, err
		}
		questions = append(questions, model.Question{
			ID:         qID,
			ExamID:     examID,
			Type:       g.Type,
			Prompt:     g.Prompt,
			Choices:    g.Choices,
			Answer:     g.Answer,
			Difficulty: g.Difficulty,
		})
		answers[strconv.FormatInt(qID, 10)] = g.Answer
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return model.Exam{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO answer_keys (exam_id, answers_json) VALUES (?, ?)`,
		examID, string(answersJSON),
	); err != nil {
		return model.Exam{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Exam{}, err
	}
	return model.Exam{Criteria: criteria, Questions: questions}, nil
}

// GetExam returns an exam with its questions, ordered as generated.
func (s *Store) GetExam(ctx context.Context, id int64) (model.Exam, error) {
	var e model.Exam
	var types string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, difficulty, question_count, question_types, curriculum, created_at
		 FROM exams WHERE id = ?`, id,
	).Scan(&e.Criteria.ID, &e.Criteria.Topic, &e.Criteria.Difficulty,
		&e.Criteria.QuestionCount, &types, &e.Criteria.Curriculum, &e.Criteria.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Exam{}, ErrNotFound
	}
	if err != nil {
		return model.Exam{}, err
	}
	e.Criteria.QuestionTypes = splitTypes(types)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, exam_id, type, prompt, choices_json, answer, difficulty
		 FROM questions WHERE exam_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return model.Exam{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var q model.Question
		var choicesJSON, difficulty sql.NullString
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Type, &q.Prompt, &choicesJSON, &q.Answer, &difficulty); err != nil {
			return model.Exam{}, err
		}
		if choicesJSON.Valid {
			if err := json.Unmarshal([]byte(choicesJSON.String), &q.Choices); err != nil {
				return model.Exam{}, err
			}
		}
		q.Difficulty = model.Difficulty(difficulty.String)
		e.Questions = append(e.Questions, q)
	}
	return e, rows.Err()
}

// GetAnswerKey returns the answer key owned by the given exam.
func (s *Store) GetAnswerKey(ctx context.Context, examID int64) (model.AnswerKey, error) {
	var key model.AnswerKey
	var answersJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, exam_id, answers_json FROM answer_keys WHERE exam_id = ?`, examID,
	).Scan(&key.ID, &key.ExamID, &answersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AnswerKey{}, ErrNotFound
	}
	if err != nil {
		return model.AnswerKey{}, err
	}
	if err := json.Unmarshal([]byte(answersJSON), &key.Answers); err != nil {
		return model.AnswerKey{}, err
	}
	return key, nil
}

// DeleteExam removes an exam; foreign keys cascade to its questions and
// answer key.
func (s *Store) DeleteExam(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExamIDs returns all exam ids in creation order.
func (s *Store) ListExamIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM exams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ExamCount returns the number of persisted exams.
func (s *Store) ExamCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exams`).Scan(&count)
	return count, err
}

func joinTypes(types []model.QuestionType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitTypes(raw string) []model.QuestionType {
	var types []model.QuestionType
	for _, part := range strings.Split(raw, ",") {
		if part != "" {
			types = append(types, model.QuestionType(part))
		}
	}
	return types
}

func nullDifficulty(d model.Difficulty) sql.NullString {
	if d == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(d), Valid: true}
}
