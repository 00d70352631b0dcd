package model

import "time"

// ExamExport is the top-level JSON structure written by the export command.
type ExamExport struct {
	ExportedAt time.Time      `json:"exported_at"`
	ExamCount  int            `json:"exam_count"`
	Exams      []ExportedExam `json:"exams"`
}

// ExportedExam holds one exam's criteria, questions, and answer key.
type ExportedExam struct {
	ID            int64             `json:"id"`
	Topic         string            `json:"topic"`
	Difficulty    Difficulty        `json:"difficulty"`
	QuestionCount int               `json:"question_count"`
	QuestionTypes []QuestionType    `json:"question_types"`
	Curriculum    string            `json:"curriculum,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Questions     []Question        `json:"questions"`
	AnswerKey     map[string]string `json:"answer_key"`
}
