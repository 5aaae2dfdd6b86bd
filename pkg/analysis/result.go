package analysis

import "strings"

// Result is the generated summary returned by the backend.
type Result struct {
	Summary string `json:"summary"`
}

// HasContent reports whether the summary carries any non-whitespace text.
func (r *Result) HasContent() bool {
	return r != nil && strings.TrimSpace(r.Summary) != ""
}

// SummaryPayload is the body of GET /get_summary/{business_name}. The backend
// answers with either a summary or an error message.
type SummaryPayload struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result converts a successful payload into a Result.
func (p SummaryPayload) Result() *Result {
	return &Result{Summary: p.Summary}
}
