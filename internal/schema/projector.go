// Package schema projects persisted field values onto a JSON-LD
// structured-data document, placing each value at its field's declared
// dotted property path.
package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
)

// defaultContext is the JSON-LD context used unless a global setting
// overrides it.
const defaultContext = "https://schema.org"

// ErrMissingName means a projected document lacks the name property
// search engines require on every entity.
var ErrMissingName = errors.New("document is missing a name property")

// Document is a JSON-LD structured-data document.
type Document map[string]any

// SetPath writes v at a dotted property path, creating intermediate
// nested objects as needed. The first writer to a prefix creates the
// nested object; sibling leaves under the same prefix merge into it.
// A path that would descend through an existing non-object value is
// skipped with a warning rather than overwriting data.
func (d Document) SetPath(path string, v any) {
	parts := strings.Split(path, ".")
	node := map[string]any(d)
	for i, part := range parts[:len(parts)-1] {
		child, ok := node[part]
		if !ok {
			created := make(map[string]any)
			node[part] = created
			node = created
			continue
		}
		obj, ok := child.(map[string]any)
		if !ok {
			slog.Warn("schema path conflicts with existing value, skipping",
				"path", path, "prefix", strings.Join(parts[:i+1], "."))
			return
		}
		node = obj
	}
	node[parts[len(parts)-1]] = v
}

// GetPath reads the value at a dotted path, reporting whether it exists.
func (d Document) GetPath(path string) (any, bool) {
	parts := strings.Split(path, ".")
	node := map[string]any(d)
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			return nil, false
		}
		node = child
	}
	v, ok := node[parts[len(parts)-1]]
	return v, ok
}

// RecordValues is the record-storage collaborator: it reads one
// persisted value by record and key, empty string when unset.
type RecordValues interface {
	Value(ctx context.Context, recordID uuid.UUID, key string) (string, error)
}

// SettingsSource supplies the global settings merged into every
// projection. Optional.
type SettingsSource interface {
	All(ctx context.Context) (models.Settings, error)
}

// Projector builds structured-data documents for records of a
// materialized content type.
type Projector struct {
	values   RecordValues
	settings SettingsSource
}

// NewProjector creates a Projector over the given record storage.
// settings may be nil.
func NewProjector(values RecordValues, settings SettingsSource) *Projector {
	return &Projector{values: values, settings: settings}
}

// Project walks the content type's fields, reads each field's persisted
// value for the record, and writes non-empty values into the document at
// their dotted schema paths. Fields without a schema property and empty
// values are skipped: the document never carries null placeholders.
func (p *Projector) Project(ctx context.Context, ct *registry.ContentType, recordID uuid.UUID) (Document, error) {
	doc := Document{
		"@context": defaultContext,
		"@type":    ct.Definition.SchemaType,
	}
	p.applySettings(ctx, doc)

	for _, f := range ct.Fields {
		prop := f.SchemaProperty()
		if prop == "" {
			continue
		}
		stored, err := p.values.Value(ctx, recordID, f.Name())
		if err != nil {
			return nil, fmt.Errorf("read value %q for record %s: %w", f.Name(), recordID, err)
		}
		v := f.SchemaValue(stored)
		if v == nil {
			continue
		}
		doc.SetPath(prop, v)
	}
	return doc, nil
}

// applySettings merges the global structured-data settings: context
// override and publisher block.
func (p *Projector) applySettings(ctx context.Context, doc Document) {
	if p.settings == nil {
		return
	}
	settings, err := p.settings.All(ctx)
	if err != nil {
		slog.Warn("schema settings unavailable, using defaults", "error", err)
		return
	}
	doc["@context"] = settings.Get(models.SettingSchemaContext, defaultContext)
	if publisher := settings.Get(models.SettingPublisherName, ""); publisher != "" {
		doc.SetPath("publisher.@type", settings.Get(models.SettingPublisherType, "Organization"))
		doc.SetPath("publisher.name", publisher)
	}
}

// Validate checks the minimum shape of a projected document: a name
// property (or headline equivalent) must be present.
func Validate(doc Document) error {
	for _, key := range []string{"name", "headline"} {
		if v, ok := doc[key]; ok {
			if s, isStr := v.(string); !isStr || strings.TrimSpace(s) != "" {
				return nil
			}
		}
	}
	return ErrMissingName
}
