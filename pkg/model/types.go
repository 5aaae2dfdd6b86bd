package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
)

// Widget names the input control a renderer should use.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetSelect   Widget = "select"
	WidgetCheckbox Widget = "checkbox"
	WidgetGroup    Widget = "group"
)

// Field models one input of the form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Widget      Widget            `json:"widget"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     string            `json:"default,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsGroup reports whether the field only groups nested inputs.
func (f Field) IsGroup() bool {
	return f.Type == FieldTypeObject
}

// NestedNames returns the names of nested fields in order.
func (f Field) NestedNames() []string {
	names := make([]string, 0, len(f.Nested))
	for _, nested := range f.Nested {
		names = append(names, nested.Name)
	}
	return names
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a top-level field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// RequiredNames lists required top-level fields in form order.
func (m FormModel) RequiredNames() []string {
	var out []string
	for _, field := range m.Fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}
