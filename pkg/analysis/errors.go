package analysis

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownField is returned by SetField for names outside the FormInput
	// scalar fields.
	ErrUnknownField = errors.New("analysis: unknown field")
	// ErrUnknownFactor is returned by SetFactor for labels outside
	// PoliticalFactors.
	ErrUnknownFactor = errors.New("analysis: unknown political factor")
)

// ValidationError lists required fields left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "analysis: missing required fields: " + strings.Join(e.Fields, ", ")
}
