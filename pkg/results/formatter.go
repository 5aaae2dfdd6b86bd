// Package results turns a backend summary into display blocks.
package results

import (
	"strings"

	"github.com/goliatone/go-pestel/pkg/analysis"
)

const (
	// Title is the heading shown above a rendered summary.
	Title = "Political Analysis Summary"
	// EmptyMessage is shown when there is nothing to render yet.
	EmptyMessage = "No results yet. Submit the form above."
)

// BlockKind distinguishes section headings from list items.
type BlockKind string

const (
	BlockHeading BlockKind = "heading"
	BlockBullet  BlockKind = "bullet"
)

// Block is one rendered line of a summary.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// IsHeading reports whether the block is a section heading.
func (b Block) IsHeading() bool {
	return b.Kind == BlockHeading
}

// headings is the closed set of section labels the backend emits. Matches are
// exact, after markdown markers are stripped; downstream output depends on the
// precise text, colon variants included.
var headings = map[string]struct{}{
	"Political Analysis Summary":   {},
	"2. Political Factor Analysis": {},
	"Political Factor Analysis":    {},
	"Government Policies:":         {},
	"Political Stability:":         {},
	"Tax Regulations:":             {},
	"Industry Regulations:":        {},
	"Summary":                      {},
	"1. Summary":                   {},
	"Government Policies":          {},
	"Political Stability":          {},
	"Tax Regulations":              {},
	"Industry Regulations":         {},
}

var markdownMarkers = strings.NewReplacer("#", "", "*", "")

// IsHeading reports whether cleaned text is one of the known section labels.
func IsHeading(text string) bool {
	_, ok := headings[text]
	return ok
}

// Clean strips every '#' and '*' from a line and trims surrounding whitespace.
func Clean(line string) string {
	return strings.TrimSpace(markdownMarkers.Replace(line))
}

// Format splits the summary into blocks. The boolean is false for the empty
// state: a nil result or a summary without any non-whitespace text.
//
// Blank lines are dropped, every other line is cleaned and classified in
// input order. Format has no side effects.
func Format(result *analysis.Result) ([]Block, bool) {
	if !result.HasContent() {
		return nil, false
	}

	lines := strings.Split(result.Summary, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		text := Clean(line)
		kind := BlockBullet
		if IsHeading(text) {
			kind = BlockHeading
		}
		blocks = append(blocks, Block{Kind: kind, Text: text})
	}
	return blocks, true
}
