package i18n

import (
	"context"
	"strings"

	"github.com/Ujeverson/api-provas/internal/model"
)

var difficultyKeys = map[model.Difficulty]string{
	model.DifficultyLembrar:  "DifficultyLembrar",
	model.DifficultyEntender: "DifficultyEntender",
	model.DifficultyAplicar:  "DifficultyAplicar",
	model.DifficultyAnalisar: "DifficultyAnalisar",
	model.DifficultyAvaliar:  "DifficultyAvaliar",
	model.DifficultyCriar:    "DifficultyCriar",
}

var typeKeys = map[model.QuestionType]string{
	model.TypeMultiplaEscolha: "TypeMultiplaEscolha",
	model.TypeDissertativa:    "TypeDissertativa",
	model.TypeVerdadeiroFalso: "TypeVerdadeiroFalso",
}

// DifficultyLabel returns the display label for a difficulty level.
// Unknown values fall back to the raw token.
func DifficultyLabel(ctx context.Context, d model.Difficulty) string {
	key, ok := difficultyKeys[d]
	if !ok {
		return string(d)
	}
	return T(ctx, key)
}

// TypeLabel returns the display label for a question type.
func TypeLabel(ctx context.Context, t model.QuestionType) string {
	key, ok := typeKeys[t]
	if !ok {
		return string(t)
	}
	return T(ctx, key)
}

// TypesLabel renders a type list as a comma-separated display string.
func TypesLabel(ctx context.Context, types []model.QuestionType) string {
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = TypeLabel(ctx, t)
	}
	return strings.Join(labels, ", ")
}
