// Package fields implements the polymorphic field model: declarative
// field descriptors, typed runtime fields with per-kind sanitize,
// validate and render behavior, the repeating-row container, and the
// factory that materializes descriptors into live fields.
package fields

// Kind identifies a field type. The factory resolves kinds to
// constructors through its registration table; an unknown kind degrades
// to KindText rather than failing.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindWysiwyg  Kind = "wysiwyg"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindDate     Kind = "date"
	KindImage    Kind = "image"
	KindRepeater Kind = "repeater"
)

// Option is one selectable choice of a select or radio field. Options
// are a slice, not a map, so that declaration order is render order.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Descriptor is the persisted declarative description of one editable
// attribute. It is the single wire shape for every field kind;
// kind-specific attributes are optional and omitted when empty.
type Descriptor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	Type           Kind     `json:"type"`
	Label          string   `json:"label,omitempty"`
	DefaultValue   string   `json:"default_value,omitempty"`
	Options        []Option `json:"options,omitempty"`
	Placeholder    string   `json:"placeholder,omitempty"`
	Group          string   `json:"group,omitempty"`
	Required       bool     `json:"required,omitempty"`
	Instructions   string   `json:"instructions,omitempty"`
	Width          string   `json:"width,omitempty"`
	CSSClass       string   `json:"css_class,omitempty"`
	SchemaProperty string   `json:"schema_property,omitempty"`

	// Current value, filled when a field is round-tripped back to its
	// descriptor. Not part of the persisted definition.
	Value any `json:"value,omitempty"`

	// Text and textarea.
	MinLength int `json:"min_length,omitempty"`
	MaxLength int `json:"max_length,omitempty"`

	// Number.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	// Select.
	Multiple bool `json:"multiple,omitempty"`

	// Checkbox.
	CheckedValue   string `json:"checked_value,omitempty"`
	UncheckedValue string `json:"unchecked_value,omitempty"`

	// Date, canonical YYYY-MM-DD bounds.
	MinDate string `json:"min_date,omitempty"`
	MaxDate string `json:"max_date,omitempty"`

	// Image, pixel-dimension bounds.
	MinWidth  int `json:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty"`
	MaxWidth  int `json:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`

	// Repeater.
	MinRows   int          `json:"min_rows,omitempty"`
	MaxRows   int          `json:"max_rows,omitempty"`
	SubFields []Descriptor `json:"sub_fields,omitempty"`
}

// StorageKey returns the key under which the field's value is persisted:
// the explicit name when set, the id otherwise.
func (d Descriptor) StorageKey() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
