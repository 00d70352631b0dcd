package exam

import (
	"context"
	"strings"
	"text/template"

	appI18n "github.com/Ujeverson/api-provas/internal/i18n"
	"github.com/Ujeverson/api-provas/internal/model"
)

// promptText is the generation instruction. The trailing JSON block is the
// literal output contract the generation service is asked to follow.
const promptText = `Gere {{.QuestionCount}} questões sobre o tema '{{.Topic}}', com nível de dificuldade '{{.Difficulty}}' e com os seguintes tipos: {{.Types}}.
{{- if .Curriculum}} Considere o seguinte currículo: {{.Curriculum}}.{{end}}

Retorne as questões e respostas no seguinte formato JSON:
{
  "questoes": [
    {
      "tipo": "multipla_escolha",
      "enunciado": "...",
      "opcoes": ["...", "..."],
      "resposta": "...",
      "nivel_dificuldade": "..."
    },
    {
      "tipo": "dissertativa",
      "enunciado": "...",
      "resposta": "...",
      "nivel_dificuldade": "..."
    }
  ]
}`

var promptTmpl = template.Must(template.New("generate").Parse(promptText))

type promptData struct {
	QuestionCount int
	Topic         string
	Difficulty    string
	Types         string
	Curriculum    string
}

// BuildPrompt renders the generation instruction for validated criteria.
// Pure and deterministic: equal criteria produce equal prompts. Difficulty
// and type labels come from the request's localizer.
func BuildPrompt(ctx context.Context, c model.ExamCriteria) string {
	var sb strings.Builder
	_ = promptTmpl.Execute(&sb, promptData{
		QuestionCount: c.QuestionCount,
		Topic:         c.Topic,
		Difficulty:    appI18n.DifficultyLabel(ctx, c.Difficulty),
		Types:         appI18n.TypesLabel(ctx, c.QuestionTypes),
		Curriculum:    c.Curriculum,
	})
	return sb.String()
}
