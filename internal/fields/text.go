package fields

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"unicode/utf8"

	"github.com/davidum2/seo-content-structure-sub000/internal/markdown"
)

// TextField is a single-line plain-text field.
type TextField struct {
	BaseField
}

func newText(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindText
	return &TextField{BaseField: newBase(d)}, nil
}

// Sanitize strips markup and collapses the value to a single line.
func (f *TextField) Sanitize(raw any) string {
	return sanitizeLine(valueString(raw))
}

// Validate runs the base required check, then the declared length bounds.
func (f *TextField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	return f.validateLength()
}

func (f *TextField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("text", widgetData{
		ID:          f.desc.ID,
		Name:        f.Name(),
		Value:       valueString(f.Value()),
		Placeholder: f.desc.Placeholder,
		Required:    f.desc.Required,
	}))
}

// validateLength checks the value's rune count against min_length and
// max_length. Shared with the textarea and wysiwyg kinds. An empty
// value passes: emptiness is the required check's business.
func (b *BaseField) validateLength() *ValidationError {
	v := valueString(b.Value())
	if v == "" {
		return nil
	}
	n := utf8.RuneCountInString(v)
	if b.desc.MinLength > 0 && n < b.desc.MinLength {
		return &ValidationError{
			Field:   b.desc.ID,
			Kind:    ErrOutOfRange,
			Message: fmt.Sprintf("%s must be at least %d characters", b.Label(), b.desc.MinLength),
		}
	}
	if b.desc.MaxLength > 0 && n > b.desc.MaxLength {
		return &ValidationError{
			Field:   b.desc.ID,
			Kind:    ErrOutOfRange,
			Message: fmt.Sprintf("%s must be at most %d characters", b.Label(), b.desc.MaxLength),
		}
	}
	return nil
}

// TextareaField is a multi-line plain-text field.
type TextareaField struct {
	BaseField
}

func newTextarea(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindTextarea
	return &TextareaField{BaseField: newBase(d)}, nil
}

// Sanitize strips markup, preserving line breaks.
func (f *TextareaField) Sanitize(raw any) string {
	return sanitizeMultiline(valueString(raw))
}

func (f *TextareaField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	return f.validateLength()
}

func (f *TextareaField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("textarea", widgetData{
		ID:          f.desc.ID,
		Name:        f.Name(),
		Value:       valueString(f.Value()),
		Placeholder: f.desc.Placeholder,
		Required:    f.desc.Required,
	}))
}

// WysiwygField stores Markdown and renders it as sanitized HTML on the
// frontend.
type WysiwygField struct {
	BaseField
}

func newWysiwyg(d Descriptor, _ Deps) (Field, error) {
	d.Type = KindWysiwyg
	return &WysiwygField{BaseField: newBase(d)}, nil
}

// Sanitize keeps the Markdown source but drops anything the UGC policy
// considers dangerous in embedded raw HTML.
func (f *WysiwygField) Sanitize(raw any) string {
	return sanitizeRich(valueString(raw))
}

func (f *WysiwygField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	return f.validateLength()
}

func (f *WysiwygField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("textarea", widgetData{
		ID:          f.desc.ID,
		Name:        f.Name(),
		Value:       valueString(f.Value()),
		Placeholder: f.desc.Placeholder,
		Required:    f.desc.Required,
	}))
}

// RenderFrontend converts the stored Markdown to HTML and sanitizes the
// result. Empty values render nothing.
func (f *WysiwygField) RenderFrontend() template.HTML {
	src := valueString(f.Value())
	if src == "" {
		return ""
	}
	out, err := markdown.ToHTML(src)
	if err != nil {
		slog.Warn("wysiwyg markdown render failed", "field", f.desc.ID, "error", err)
		return ""
	}
	return template.HTML(richPolicy.Sanitize(out))
}
