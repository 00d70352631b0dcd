package exam

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Ujeverson/api-provas/internal/model"
)

// replyQuestion mirrors one entry of the generation service's JSON contract.
type replyQuestion struct {
	Tipo             string   `json:"tipo"`
	Enunciado        string   `json:"enunciado"`
	Opcoes           []string `json:"opcoes"`
	Resposta         string   `json:"resposta"`
	NivelDificuldade string   `json:"nivel_dificuldade"`
}

type reply struct {
	Questoes []json.RawMessage `json:"questoes"`
}

// ParseReply extracts normalized questions from a raw generation reply,
// preserving source order. The reply is natural-language-adjacent output with
// no guaranteed schema compliance, so failures are soft: an unparseable
// document yields an empty list, and individual entries that are malformed,
// incomplete, or carry an unknown type are dropped. An unknown difficulty tag
// is cleared rather than dropping an otherwise complete question.
func ParseReply(raw string) []model.GeneratedQuestion {
	var rep reply
	if err := json.Unmarshal([]byte(stripFences(raw)), &rep); err != nil {
		slog.Warn("unparseable generation reply", "error", err)
		return nil
	}

	var questions []model.GeneratedQuestion
	for _, entry := range rep.Questoes {
		var q replyQuestion
		if err := json.Unmarshal(entry, &q); err != nil {
			slog.Warn("dropping malformed question entry", "error", err)
			continue
		}
		if q.Tipo == "" || q.Enunciado == "" || q.Resposta == "" {
			slog.Warn("dropping incomplete question entry")
			continue
		}
		typ := model.QuestionType(q.Tipo)
		if !typ.Valid() {
			slog.Warn("dropping question with unknown type", "type", q.Tipo)
			continue
		}
		difficulty := model.Difficulty(q.NivelDificuldade)
		if difficulty != "" && !difficulty.Valid() {
			slog.Warn("clearing unknown difficulty tag", "difficulty", q.NivelDificuldade)
			difficulty = ""
		}
		questions = append(questions, model.GeneratedQuestion{
			Type:       typ,
			Prompt:     q.Enunciado,
			Choices:    q.Opcoes,
			Answer:     q.Resposta,
			Difficulty: difficulty,
		})
	}
	return questions
}

// stripFences removes a surrounding Markdown code fence, which some models
// wrap around JSON replies despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence line, if any.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
