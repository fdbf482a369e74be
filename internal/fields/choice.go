package fields

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

// choiceField is the shared behavior of the select and radio kinds:
// values are constrained to the declared option set. Unknown submitted
// values are silently dropped by Sanitize, while Validate still reports
// them so the user sees the invalid state before the write-time filter
// discards it.
type choiceField struct {
	BaseField
}

// allowed reports whether v is a declared option value.
func (f *choiceField) allowed(v string) bool {
	for _, o := range f.desc.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// selectedValues normalizes a raw value into the list of selected
// option values. Accepts a plain string, a string slice, or a
// JSON-encoded array (the storage form of multi-selects).
func selectedValues(raw any) []string {
	switch t := raw.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			out = append(out, valueString(v))
		}
		return out
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			var decoded []any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				return selectedValues(decoded)
			}
		}
		return []string{s}
	default:
		return []string{valueString(raw)}
	}
}

func (f *choiceField) validateMembership() *ValidationError {
	for _, v := range selectedValues(f.Value()) {
		if !f.allowed(v) {
			return &ValidationError{
				Field:   f.desc.ID,
				Kind:    ErrInvalidOption,
				Message: fmt.Sprintf("%q is not a valid choice for %s", v, f.Label()),
			}
		}
	}
	return nil
}

func (f *choiceField) optionViews() []optionView {
	selected := make(map[string]bool)
	for _, v := range selectedValues(f.Value()) {
		selected[v] = true
	}
	views := make([]optionView, 0, len(f.desc.Options))
	for _, o := range f.desc.Options {
		label := o.Label
		if label == "" {
			label = o.Value
		}
		views = append(views, optionView{Value: o.Value, Label: label, Selected: selected[o.Value]})
	}
	return views
}

// SelectField is a dropdown choice field, optionally multi-valued.
// Multi-select values are stored as a JSON-encoded array string.
type SelectField struct {
	choiceField
}

func newSelect(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindSelect
	return &SelectField{choiceField{BaseField: newBase(d)}}, nil
}

// Sanitize drops every submitted value that is not a declared option.
// Single selects store the value itself; multi-selects store the JSON
// array of surviving values, or empty when none survive.
func (f *SelectField) Sanitize(raw any) string {
	var kept []string
	for _, v := range selectedValues(raw) {
		if f.allowed(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	if !f.desc.Multiple {
		return kept[0]
	}
	encoded, err := json.Marshal(kept)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func (f *SelectField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	return f.validateMembership()
}

// SchemaValue projects a single value as a string and a multi-select as
// a string array.
func (f *SelectField) SchemaValue(stored string) any {
	vals := selectedValues(stored)
	if len(vals) == 0 {
		return nil
	}
	if !f.desc.Multiple {
		return vals[0]
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func (f *SelectField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("select", widgetData{
		ID:       f.desc.ID,
		Name:     f.Name(),
		Required: f.desc.Required,
		Multiple: f.desc.Multiple,
		Options:  f.optionViews(),
	}))
}

// RenderFrontend renders the selected option labels, comma separated.
func (f *SelectField) RenderFrontend() template.HTML {
	vals := selectedValues(f.Value())
	if len(vals) == 0 {
		return ""
	}
	labels := make([]string, 0, len(vals))
	for _, v := range vals {
		labels = append(labels, f.optionLabel(v))
	}
	return execWidget("frontend_value", frontendData{
		CSSClass: f.desc.CSSClass,
		Value:    strings.Join(labels, ", "),
	})
}

func (f *choiceField) optionLabel(v string) string {
	for _, o := range f.desc.Options {
		if o.Value == v && o.Label != "" {
			return o.Label
		}
	}
	return v
}

// RadioField is a single-choice field rendered as a radio group.
type RadioField struct {
	choiceField
}

func newRadio(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindRadio
	return &RadioField{choiceField{BaseField: newBase(d)}}, nil
}

// Sanitize keeps the value only when it is a declared option.
func (f *RadioField) Sanitize(raw any) string {
	vals := selectedValues(raw)
	if len(vals) == 0 {
		return ""
	}
	if f.allowed(vals[0]) {
		return vals[0]
	}
	return ""
}

func (f *RadioField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	return f.validateMembership()
}

func (f *RadioField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("radio", widgetData{
		ID:      f.desc.ID,
		Name:    f.Name(),
		Options: f.optionViews(),
	}))
}

// RenderFrontend renders the selected option's label.
func (f *RadioField) RenderFrontend() template.HTML {
	vals := selectedValues(f.Value())
	if len(vals) == 0 {
		return ""
	}
	return execWidget("frontend_value", frontendData{
		CSSClass: f.desc.CSSClass,
		Value:    f.optionLabel(vals[0]),
	})
}
