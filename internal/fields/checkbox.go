package fields

import (
	"html/template"
	"strings"
)

// Default canonical checkbox values. Overridable per descriptor via
// checked_value / unchecked_value.
const (
	defaultChecked   = "1"
	defaultUnchecked = "0"
)

// CheckboxField normalizes any input to exactly one of two canonical
// values. The admin widget always emits a hidden unchecked input before
// the visible control, so an unchecked box still submits a concrete
// value instead of disappearing from the form data.
type CheckboxField struct {
	BaseField
}

func newCheckbox(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindCheckbox
	if d.CheckedValue == "" {
		d.CheckedValue = defaultChecked
	}
	if d.UncheckedValue == "" {
		d.UncheckedValue = defaultUnchecked
	}
	return &CheckboxField{BaseField: newBase(d)}, nil
}

// Sanitize maps the input onto the checked value when it matches it (or
// a common truthy form) and onto the unchecked value otherwise.
func (f *CheckboxField) Sanitize(raw any) string {
	if f.isChecked(raw) {
		return f.desc.CheckedValue
	}
	return f.desc.UncheckedValue
}

func (f *CheckboxField) isChecked(raw any) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	s := strings.TrimSpace(valueString(raw))
	if s == f.desc.CheckedValue {
		return true
	}
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true
	}
	return false
}

// SchemaValue projects the checkbox as a boolean.
func (f *CheckboxField) SchemaValue(stored string) any {
	if strings.TrimSpace(stored) == "" {
		return nil
	}
	return stored == f.desc.CheckedValue
}

func (f *CheckboxField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("checkbox", widgetData{
		ID:        f.desc.ID,
		Name:      f.Name(),
		Checked:   f.desc.CheckedValue,
		Unchecked: f.desc.UncheckedValue,
		IsChecked: f.isChecked(f.Value()),
	}))
}

// RenderFrontend renders the checked value only; an unchecked box is as
// good as empty on the frontend.
func (f *CheckboxField) RenderFrontend() template.HTML {
	if !f.isChecked(f.Value()) {
		return ""
	}
	return execWidget("frontend_value", frontendData{
		CSSClass: f.desc.CSSClass,
		Value:    f.Label(),
	})
}
