package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation identifiers declared by the embedded contract.
const (
	OperationPing       = "ping"
	OperationAnalyze    = "analyzePestel"
	OperationGetSummary = "getSummary"
)

//go:embed pestel.openapi.yaml
var contract []byte

// ErrOperationNotFound is returned for operation ids the document does not
// declare.
var ErrOperationNotFound = errors.New("schema: operation not found")

// Operation is one method/path pair of the contract.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string

	op *openapi3.Operation
}

// Schema is a loaded and validated contract.
type Schema struct {
	doc        *openapi3.T
	operations map[string]Operation
}

// Load parses and validates the embedded contract.
func Load(ctx context.Context) (*Schema, error) {
	return LoadData(ctx, contract)
}

// LoadFile parses and validates a contract stored on disk.
func LoadFile(ctx context.Context, path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return LoadData(ctx, raw)
}

// LoadData parses and validates raw YAML or JSON.
func LoadData(ctx context.Context, raw []byte) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("schema: document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("schema: validate: %w", err)
	}

	s := &Schema{doc: doc, operations: make(map[string]Operation)}
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				s.collect(strings.ToUpper(method), path, op)
			}
		}
	}
	if len(s.operations) == 0 {
		return nil, errors.New("schema: document declares no operations")
	}
	return s, nil
}

func (s *Schema) collect(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	s.operations[id] = Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		op:          op,
	}
}

// Title returns the document title.
func (s *Schema) Title() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Title
}

// Operation looks up an operation by id.
func (s *Schema) Operation(id string) (Operation, error) {
	op, ok := s.operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

// Operations lists every operation sorted by id.
func (s *Schema) Operations() []Operation {
	out := make([]Operation, 0, len(s.operations))
	for _, op := range s.operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ResponseStatuses lists the declared status codes of an operation.
func (o Operation) ResponseStatuses() []int {
	if o.op == nil || o.op.Responses == nil {
		return nil
	}
	var out []int
	for code := range o.op.Responses.Map() {
		var status int
		if _, err := fmt.Sscanf(code, "%d", &status); err == nil && http.StatusText(status) != "" {
			out = append(out, status)
		}
	}
	sort.Ints(out)
	return out
}

func (o Operation) requestSchema() (*openapi3.Schema, error) {
	if o.op == nil || o.op.RequestBody == nil || o.op.RequestBody.Value == nil {
		return nil, fmt.Errorf("schema: operation %q has no request body", o.ID)
	}
	media := o.op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("schema: operation %q has no JSON request schema", o.ID)
	}
	return media.Schema.Value, nil
}
