package exam

import (
	"strings"

	"github.com/Ujeverson/api-provas/internal/model"
)

// CriteriaRequest is the decoded body of a generation request.
type CriteriaRequest struct {
	Topic          string `json:"topic"`
	Difficulty     string `json:"difficulty"`
	QuestionCount  int    `json:"question_count"`
	RequestedTypes string `json:"requested_types"`
	Curriculum     string `json:"curriculum,omitempty"`
}

// ValidateCriteria checks a request against the fixed criteria schema and
// returns validated criteria ready for persistence. On any violation it
// returns a *ValidationError enumerating the offending fields.
func ValidateCriteria(req CriteriaRequest) (model.ExamCriteria, error) {
	verr := &ValidationError{}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		verr.add("topic", "topic is required")
	}

	difficulty := model.Difficulty(strings.TrimSpace(req.Difficulty))
	if difficulty == "" {
		verr.add("difficulty", "difficulty is required")
	} else if !difficulty.Valid() {
		verr.add("difficulty", "unknown difficulty "+string(difficulty))
	}

	if req.QuestionCount <= 0 {
		verr.add("question_count", "question_count must be a positive integer")
	}

	types := parseTypes(req.RequestedTypes, verr)

	if len(verr.Fields) > 0 {
		return model.ExamCriteria{}, verr
	}

	return model.ExamCriteria{
		Topic:         topic,
		Difficulty:    difficulty,
		QuestionCount: req.QuestionCount,
		QuestionTypes: types,
		Curriculum:    strings.TrimSpace(req.Curriculum),
	}, nil
}

// parseTypes splits the comma-separated type list, validating each entry
// against the fixed enumeration. Duplicates are collapsed, order preserved.
func parseTypes(raw string, verr *ValidationError) []model.QuestionType {
	var types []model.QuestionType
	seen := map[model.QuestionType]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t := model.QuestionType(part)
		if !t.Valid() {
			verr.add("requested_types", "unknown question type "+part)
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	if len(types) == 0 && verr.Fields["requested_types"] == nil {
		verr.add("requested_types", "at least one question type is required")
	}
	return types
}
