package fields

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// canonicalDate is the storage format for date values.
const canonicalDate = "2006-01-02"

// DateField accepts permissively formatted dates and stores them in the
// canonical YYYY-MM-DD form.
type DateField struct {
	BaseField
}

func newDate(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindDate
	return &DateField{BaseField: newBase(d)}, nil
}

// Sanitize parses the input with a permissive parser and reformats it
// canonically. Unparsable input silently becomes empty; the validator is
// the place that reports bad dates, not the write-time net.
func (f *DateField) Sanitize(raw any) string {
	s := strings.TrimSpace(valueString(raw))
	if s == "" {
		return ""
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return ""
	}
	return t.Format(canonicalDate)
}

// Validate runs the base check, re-checks the canonical format, and
// then enforces the min_date/max_date bounds.
func (f *DateField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	s := strings.TrimSpace(valueString(f.Value()))
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrBadFormat,
			Message: fmt.Sprintf("%s is not a valid date", f.Label()),
		}
	}
	if f.desc.MinDate != "" {
		if min, perr := time.Parse(canonicalDate, f.desc.MinDate); perr == nil && t.Before(min) {
			return &ValidationError{
				Field:   f.desc.ID,
				Kind:    ErrOutOfRange,
				Message: fmt.Sprintf("%s must not be before %s", f.Label(), f.desc.MinDate),
			}
		}
	}
	if f.desc.MaxDate != "" {
		if max, perr := time.Parse(canonicalDate, f.desc.MaxDate); perr == nil && t.After(max.Add(24*time.Hour-time.Nanosecond)) {
			return &ValidationError{
				Field:   f.desc.ID,
				Kind:    ErrOutOfRange,
				Message: fmt.Sprintf("%s must not be after %s", f.Label(), f.desc.MaxDate),
			}
		}
	}
	return nil
}

// SchemaValue projects the canonical date string.
func (f *DateField) SchemaValue(stored string) any {
	s := strings.TrimSpace(stored)
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	return t.Format(canonicalDate)
}

func (f *DateField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("date", widgetData{
		ID:       f.desc.ID,
		Name:     f.Name(),
		Value:    valueString(f.Value()),
		Required: f.desc.Required,
		MinDate:  f.desc.MinDate,
		MaxDate:  f.desc.MaxDate,
	}))
}
