package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-pestel/pkg/model"
)

const (
	orderExtension       = "x-order"
	placeholderExtension = "x-placeholder"
	widgetExtension      = "x-widget"
)

// BuildOption configures FormModel.
type BuildOption func(*buildOptions)

type buildOptions struct {
	labeler model.Labeler
}

// WithLabeler overrides the label used for properties without a title.
func WithLabeler(labeler model.Labeler) BuildOption {
	return func(opts *buildOptions) {
		if labeler != nil {
			opts.labeler = labeler
		}
	}
}

// FormModel builds the form for an operation's JSON request body.
func (s *Schema) FormModel(operationID string, options ...BuildOption) (model.FormModel, error) {
	opts := buildOptions{labeler: model.DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	op, err := s.Operation(operationID)
	if err != nil {
		return model.FormModel{}, err
	}
	body, err := op.requestSchema()
	if err != nil {
		return model.FormModel{}, err
	}

	form := model.FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      op.Method,
		Summary:     op.Summary,
		Description: op.Description,
		Fields:      buildFields(body, opts),
	}
	if title := s.Title(); title != "" {
		form.Metadata = map[string]string{"title": title}
	}
	return form, nil
}

func buildFields(parent *openapi3.Schema, opts buildOptions) []model.Field {
	required := make(map[string]bool, len(parent.Required))
	for _, name := range parent.Required {
		required[name] = true
	}

	names := orderedProperties(parent.Properties)
	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := parent.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, buildField(name, ref.Value, required[name], opts))
	}
	return fields
}

func buildField(name string, src *openapi3.Schema, required bool, opts buildOptions) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(src.Type),
		Required:    required,
		Label:       src.Title,
		Description: src.Description,
		Placeholder: stringExtension(src.Extensions, placeholderExtension),
	}
	if field.Label == "" {
		field.Label = opts.labeler(name)
	}
	if src.Default != nil {
		field.Default = fmt.Sprint(src.Default)
	}
	for _, value := range src.Enum {
		field.Enum = append(field.Enum, fmt.Sprint(value))
	}
	if field.Type == model.FieldTypeObject {
		field.Nested = buildFields(src, opts)
	}

	field.Widget = model.Widget(stringExtension(src.Extensions, widgetExtension))
	if field.Widget == "" {
		field.Widget = defaultWidget(field)
	}

	if order, ok := orderOf(src); ok {
		field.Metadata = map[string]string{"order": strconv.Itoa(order)}
	}
	return field
}

func fieldType(types *openapi3.Types) model.FieldType {
	switch {
	case types == nil:
		return model.FieldTypeString
	case types.Is(openapi3.TypeBoolean):
		return model.FieldTypeBoolean
	case types.Is(openapi3.TypeObject):
		return model.FieldTypeObject
	default:
		return model.FieldTypeString
	}
}

func defaultWidget(field model.Field) model.Widget {
	switch {
	case field.Type == model.FieldTypeObject:
		return model.WidgetGroup
	case field.Type == model.FieldTypeBoolean:
		return model.WidgetCheckbox
	case len(field.Enum) > 0:
		return model.WidgetSelect
	default:
		return model.WidgetText
	}
}

// orderedProperties sorts by x-order, properties without one last, ties and
// the unordered tail by name.
func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	rank := func(name string) int {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return math.MaxInt
		}
		if order, ok := orderOf(ref.Value); ok {
			return order
		}
		return math.MaxInt
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func orderOf(src *openapi3.Schema) (int, bool) {
	raw, ok := src.Extensions[orderExtension]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
