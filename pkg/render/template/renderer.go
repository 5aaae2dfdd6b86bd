package template

import (
	"errors"
	"io"
)

// ErrFilterExists is returned by RegisterFilter when the name is taken.
var ErrFilterExists = errors.New("template: filter already registered")

// FilterFunc transforms a value inside a template expression.
type FilterFunc func(input any, param any) (any, error)

// Renderer executes named templates.
type Renderer interface {
	// RenderTemplate executes the named template and writes the output to
	// every writer in out. The rendered text is also returned.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn FilterFunc) error
	// GlobalContext merges data into the values every template sees.
	GlobalContext(data any) error
}
