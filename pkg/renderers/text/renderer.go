// Package text prints formatted summaries to a terminal or as JSON.
package text

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/results"
)

// BulletMarker prefixes every bullet line.
const BulletMarker = "• "

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles overrides the styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithPlain disables colour and emphasis.
func WithPlain() Option {
	return func(r *Renderer) {
		r.styles = PlainStyles()
	}
}

// Renderer writes results as styled lines.
type Renderer struct {
	styles Styles
}

// New returns a Renderer using DefaultStyles unless overridden.
func New(options ...Option) *Renderer {
	r := &Renderer{styles: DefaultStyles()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render writes the title and blocks, or the empty message.
func (r *Renderer) Render(w io.Writer, result *analysis.Result) error {
	blocks, ok := results.Format(result)
	if !ok {
		_, err := fmt.Fprintln(w, r.styles.Empty.Render(results.EmptyMessage))
		return err
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(results.Title))
	b.WriteString("\n")
	for _, block := range blocks {
		if block.IsHeading() {
			b.WriteString("\n")
			b.WriteString(r.styles.Heading.Render(block.Text))
		} else {
			b.WriteString(r.styles.Bullet.Render(BulletMarker + block.Text))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderError writes a one-line error message.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintln(w, r.styles.Error.Render("Error: "+err.Error()))
	return werr
}

// Document is the JSON shape of a formatted result.
type Document struct {
	Title   string          `json:"title"`
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
	Blocks  []results.Block `json:"blocks"`
}

// NewDocument formats result into a Document.
func NewDocument(result *analysis.Result) Document {
	blocks, ok := results.Format(result)
	doc := Document{Title: results.Title, Empty: !ok, Blocks: blocks}
	if !ok {
		doc.Message = results.EmptyMessage
		doc.Blocks = []results.Block{}
	}
	return doc
}

// RenderJSON writes the formatted result as indented JSON.
func RenderJSON(w io.Writer, result *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(result)); err != nil {
		return fmt.Errorf("text renderer: encode json: %w", err)
	}
	return nil
}
