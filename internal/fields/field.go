package fields

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// Field is the contract every concrete field kind satisfies. A Field is a
// typed runtime wrapper around a Descriptor, holding a current value.
//
// Sanitize is pure and never fails: it degrades any input to a string
// that is safe to persist for the kind. Validate checks the current
// value against the field's own constraints and returns a typed error
// instead of raising, so batches can accumulate every violation.
type Field interface {
	// Descriptor round-trips the field back to its persistable shape,
	// including the current value.
	Descriptor() Descriptor
	ID() string
	// Name is the storage key (descriptor name, falling back to id).
	Name() string
	Kind() Kind
	Label() string
	Required() bool
	SchemaProperty() string

	// Value returns the current value, falling back to the declared
	// default when unset.
	Value() any
	SetValue(raw any)

	Sanitize(raw any) string
	Validate(ctx context.Context) *ValidationError

	// SchemaValue converts a persisted raw value into the typed value
	// placed in a projected structured-data document. It returns nil
	// for empty input and must not mutate the field.
	SchemaValue(stored string) any

	// RenderAdmin produces an editable markup fragment embedding the
	// field's name and id so submitted form data maps 1:1 back to the
	// stored key. RenderFrontend produces a read-only fragment, empty
	// when the value is empty.
	RenderAdmin() template.HTML
	RenderFrontend() template.HTML
}

// BaseField carries the behavior shared by all kinds: descriptor
// plumbing, value/default fallback and the uniform required-but-empty
// check. Concrete kinds embed it and extend Validate, always running
// the base check first.
type BaseField struct {
	desc  Descriptor
	value any
	set   bool
}

func newBase(d Descriptor) BaseField {
	return BaseField{desc: d}
}

// Descriptor returns the persistable shape of the field including its
// current value.
func (b *BaseField) Descriptor() Descriptor {
	d := b.desc
	d.Value = b.Value()
	return d
}

func (b *BaseField) ID() string   { return b.desc.ID }
func (b *BaseField) Name() string { return b.desc.StorageKey() }
func (b *BaseField) Kind() Kind   { return b.desc.Type }

func (b *BaseField) Label() string {
	if b.desc.Label != "" {
		return b.desc.Label
	}
	return b.desc.ID
}

func (b *BaseField) Required() bool         { return b.desc.Required }
func (b *BaseField) SchemaProperty() string { return b.desc.SchemaProperty }

// Value returns the current value, or the declared default when no
// value has been set.
func (b *BaseField) Value() any {
	if b.set && !isEmpty(b.value) {
		return b.value
	}
	if b.set {
		// Explicitly set to empty: stays empty, the default does not
		// resurrect cleared values.
		return b.value
	}
	if b.desc.DefaultValue != "" {
		return b.desc.DefaultValue
	}
	return nil
}

// SetValue replaces the current value with raw, unmodified.
func (b *BaseField) SetValue(raw any) {
	b.value = raw
	b.set = true
}

// Validate enforces the base contract: a required field must not be
// empty. Kinds with extra constraints shadow this method and call
// validateRequired first.
func (b *BaseField) Validate(_ context.Context) *ValidationError {
	return b.validateRequired()
}

func (b *BaseField) validateRequired() *ValidationError {
	if b.desc.Required && isEmpty(b.Value()) {
		return &ValidationError{
			Field:   b.desc.ID,
			Kind:    ErrRequired,
			Message: fmt.Sprintf("%s is required", b.Label()),
		}
	}
	return nil
}

// SchemaValue maps a stored value to its structured-data form: the raw
// string, or nil when empty.
func (b *BaseField) SchemaValue(stored string) any {
	if strings.TrimSpace(stored) == "" {
		return nil
	}
	return stored
}

// RenderFrontend renders the escaped current value, or nothing at all
// when the value is empty. An unset field never leaks its type's zero
// value to the frontend.
func (b *BaseField) RenderFrontend() template.HTML {
	v := valueString(b.Value())
	if v == "" {
		return ""
	}
	return execWidget("frontend_value", frontendData{CSSClass: b.desc.CSSClass, Value: v})
}

// valueString coerces an arbitrary raw value to its string form for
// rendering and storage. Slices and maps are not flattened here; kinds
// with structured values override storage encoding themselves.
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// isEmpty reports whether a raw value counts as "no value" for the
// purposes of required checks and frontend rendering.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []byte:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case []Row:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
