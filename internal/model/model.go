package model

import "time"

// Difficulty is a Bloom-taxonomy level attached to an exam or a single
// question. The stored tokens match the generation-service contract.
type Difficulty string

const (
	DifficultyLembrar  Difficulty = "lembrar"
	DifficultyEntender Difficulty = "entender"
	DifficultyAplicar  Difficulty = "aplicar"
	DifficultyAnalisar Difficulty = "analisar"
	DifficultyAvaliar  Difficulty = "avaliar"
	DifficultyCriar    Difficulty = "criar"
)

// Valid reports whether d is one of the six taxonomy levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLembrar, DifficultyEntender, DifficultyAplicar,
		DifficultyAnalisar, DifficultyAvaliar, DifficultyCriar:
		return true
	}
	return false
}

// QuestionType is the format of a generated question.
type QuestionType string

const (
	TypeMultiplaEscolha QuestionType = "multipla_escolha"
	TypeDissertativa    QuestionType = "dissertativa"
	TypeVerdadeiroFalso QuestionType = "verdadeiro_falso"
)

// Valid reports whether t is one of the three supported formats.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultiplaEscolha, TypeDissertativa, TypeVerdadeiroFalso:
		return true
	}
	return false
}

// ExamCriteria is the validated set of parameters a generation request was
// created from. Immutable once persisted.
type ExamCriteria struct {
	ID            int64          `json:"id"`
	Topic         string         `json:"topic"`
	Difficulty    Difficulty     `json:"difficulty"`
	QuestionCount int            `json:"question_count"`
	QuestionTypes []QuestionType `json:"question_types"`
	Curriculum    string         `json:"curriculum,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Question is one generated item belonging to an exam.
type Question struct {
	ID         int64        `json:"id"`
	ExamID     int64        `json:"exam_id"`
	Type       QuestionType `json:"type"`
	Prompt     string       `json:"prompt"`
	Choices    []string     `json:"choices,omitempty"` // only for multiple choice
	Answer     string       `json:"answer"`
	Difficulty Difficulty   `json:"difficulty,omitempty"` // empty when the model omitted it
}

// GeneratedQuestion is a normalized question parsed from a generation reply,
// not yet persisted.
type GeneratedQuestion struct {
	Type       QuestionType
	Prompt     string
	Choices    []string
	Answer     string
	Difficulty Difficulty
}

// AnswerKey maps each question of one exam to its correct answer.
// Keys are question identifiers rendered as text.
type AnswerKey struct {
	ID      int64             `json:"id"`
	ExamID  int64             `json:"exam_id"`
	Answers map[string]string `json:"answers"`
}

// Exam bundles criteria with the questions generated for them.
type Exam struct {
	Criteria  ExamCriteria
	Questions []Question
}

// UserRole represents a user's access level.
type UserRole string

const (
	// UserRoleTeacher can generate and read exams.
	UserRoleTeacher UserRole = "teacher"
	// UserRoleAdmin can additionally manage users and delete exams.
	UserRoleAdmin UserRole = "admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == UserRoleTeacher || r == UserRoleAdmin
}

// User represents a system user.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
