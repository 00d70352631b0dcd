package exam

import (
	"sort"
	"strings"
)

// ValidationError reports invalid exam criteria. Fields maps request field
// names to the messages describing what is wrong with each.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid criteria: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// GenerationError wraps a transport or provider failure from the external
// generation service. Nothing is persisted when it occurs.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generation service: " + e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }
