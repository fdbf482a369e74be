package fields

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// AttachmentMeta is the slice of attachment metadata the image field
// needs for referential validation. The resolver reads stored metadata
// only, never file bytes.
type AttachmentMeta struct {
	ID          int64
	ContentType string
	Width       int
	Height      int
	URL         string
}

// IsImage reports whether the attachment holds an image.
func (a AttachmentMeta) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// AttachmentResolver looks up attachment metadata by id. A nil result
// with a nil error means the attachment does not exist.
type AttachmentResolver interface {
	Attachment(ctx context.Context, id int64) (*AttachmentMeta, error)
}

// ImageField references an uploaded attachment by integer id.
type ImageField struct {
	BaseField
	resolver AttachmentResolver
}

func newImage(d Descriptor, deps Deps) (Field, error) {
	d.Type = KindImage
	return &ImageField{BaseField: newBase(d), resolver: deps.Attachments}, nil
}

// Sanitize coerces the input to a positive integer attachment id.
// Anything else — negative, zero, non-numeric — degrades to empty,
// meaning "no attachment".
func (f *ImageField) Sanitize(raw any) string {
	s := strings.TrimSpace(valueString(raw))
	if s == "" {
		return ""
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// Validate runs the base check, then verifies the referenced attachment
// exists, is an image, and satisfies the declared pixel bounds.
func (f *ImageField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	s := strings.TrimSpace(valueString(f.Value()))
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrBadFormat,
			Message: fmt.Sprintf("%s must reference an attachment id", f.Label()),
		}
	}
	if f.resolver == nil {
		// No resolver wired: referential checks are the host's problem.
		return nil
	}
	att, rerr := f.resolver.Attachment(ctx, id)
	if rerr != nil {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrNotFound,
			Message: fmt.Sprintf("could not look up attachment %d", id),
		}
	}
	if att == nil {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrNotFound,
			Message: fmt.Sprintf("attachment %d does not exist", id),
		}
	}
	if !att.IsImage() {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrBadFormat,
			Message: fmt.Sprintf("attachment %d is not an image", id),
		}
	}
	if f.desc.MinWidth > 0 && att.Width < f.desc.MinWidth ||
		f.desc.MinHeight > 0 && att.Height < f.desc.MinHeight ||
		f.desc.MaxWidth > 0 && att.Width > f.desc.MaxWidth ||
		f.desc.MaxHeight > 0 && att.Height > f.desc.MaxHeight {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrOutOfRange,
			Message: fmt.Sprintf("%s dimensions are outside the allowed bounds", f.Label()),
		}
	}
	return nil
}

// SchemaValue projects the attachment id as a JSON number.
func (f *ImageField) SchemaValue(stored string) any {
	s := strings.TrimSpace(stored)
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return id
}

func (f *ImageField) RenderAdmin() template.HTML {
	return f.wrap(execWidget("image", widgetData{
		ID:       f.desc.ID,
		Name:     f.Name(),
		Value:    valueString(f.Value()),
		Required: f.desc.Required,
	}))
}
