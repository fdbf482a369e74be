package fields

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// NumberField holds a numeric value with optional min/max bounds.
type NumberField struct {
	BaseField
}

func newNumber(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindNumber
	return &NumberField{BaseField: newBase(d)}, nil
}

// Sanitize coerces the input to a float and clamps it into the declared
// [min, max] range. Clamping is lossy on purpose: it is the write-time
// safety net, while Validate reports the out-of-range state to the user
// before anything is clamped. Non-numeric input degrades to empty.
func (f *NumberField) Sanitize(raw any) string {
	s := strings.TrimSpace(valueString(raw))
	if s == "" {
		return ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	if f.desc.Min != nil && v < *f.desc.Min {
		v = *f.desc.Min
	}
	if f.desc.Max != nil && v > *f.desc.Max {
		v = *f.desc.Max
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate runs the base check, requires the value to be numeric, and
// then range-checks it against min/max.
func (f *NumberField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	s := strings.TrimSpace(valueString(f.Value()))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrBadFormat,
			Message: fmt.Sprintf("%s must be a number", f.Label()),
		}
	}
	if f.desc.Min != nil && v < *f.desc.Min {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrOutOfRange,
			Message: fmt.Sprintf("%s must be at least %s", f.Label(), formatFloat(*f.desc.Min)),
		}
	}
	if f.desc.Max != nil && v > *f.desc.Max {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrOutOfRange,
			Message: fmt.Sprintf("%s must be at most %s", f.Label(), formatFloat(*f.desc.Max)),
		}
	}
	return nil
}

// SchemaValue projects the stored value as a JSON number.
func (f *NumberField) SchemaValue(stored string) any {
	s := strings.TrimSpace(stored)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return v
}

func (f *NumberField) RenderAdmin() template.HTML {
	d := widgetData{
		ID:          f.desc.ID,
		Name:        f.Name(),
		Value:       valueString(f.Value()),
		Placeholder: f.desc.Placeholder,
		Required:    f.desc.Required,
	}
	if f.desc.Min != nil {
		d.MinAttr = formatFloat(*f.desc.Min)
	}
	if f.desc.Max != nil {
		d.MaxAttr = formatFloat(*f.desc.Max)
	}
	if f.desc.Step != nil {
		d.StepAttr = formatFloat(*f.desc.Step)
	}
	return f.wrap(execWidget("number", d))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
