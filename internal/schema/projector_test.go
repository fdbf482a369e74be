package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/models"
	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
)

func TestDocumentSetPath(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		doc := Document{}
		doc.SetPath("name", "Consultoria SEO")
		want := Document{"name": "Consultoria SEO"}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("first writer creates nested object", func(t *testing.T) {
		doc := Document{}
		doc.SetPath("offers.price", 149.9)
		want := Document{"offers": map[string]any{"price": 149.9}}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("siblings merge into one object", func(t *testing.T) {
		doc := Document{}
		doc.SetPath("offers.price", 149.9)
		doc.SetPath("offers.priceCurrency", "EUR")
		want := Document{"offers": map[string]any{
			"price":         149.9,
			"priceCurrency": "EUR",
		}}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("conflicting scalar prefix is skipped", func(t *testing.T) {
		doc := Document{"offers": "a plain string"}
		doc.SetPath("offers.price", 149.9)
		want := Document{"offers": "a plain string"}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("existing value should survive (-want +got):\n%s", diff)
		}
	})

	t.Run("deep path", func(t *testing.T) {
		doc := Document{}
		doc.SetPath("offers.seller.name", "Acme")
		want := Document{"offers": map[string]any{
			"seller": map[string]any{"name": "Acme"},
		}}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDocumentGetPath(t *testing.T) {
	doc := Document{}
	doc.SetPath("offers.price", 149.9)

	if v, ok := doc.GetPath("offers.price"); !ok || v != 149.9 {
		t.Errorf("GetPath(offers.price) = %v, %v", v, ok)
	}
	if _, ok := doc.GetPath("offers.priceCurrency"); ok {
		t.Error("absent leaf reported present")
	}
	if _, ok := doc.GetPath("review.rating"); ok {
		t.Error("absent branch reported present")
	}
}

// fakeValues serves record values from a nested map.
type fakeValues struct {
	values map[uuid.UUID]map[string]string
	err    error
}

func (v *fakeValues) Value(_ context.Context, recordID uuid.UUID, key string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.values[recordID][key], nil
}

type fakeSettings struct {
	settings models.Settings
	err      error
}

func (s *fakeSettings) All(context.Context) (models.Settings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.settings, nil
}

// serviceType materializes a content type shaped like the seeded
// "servicio": one number field projecting onto offers.price.
func serviceType(t *testing.T, descs ...fields.Descriptor) *registry.ContentType {
	t.Helper()
	if descs == nil {
		min := 0.0
		descs = []fields.Descriptor{{
			ID:             "_service_price",
			Name:           "_service_price",
			Type:           fields.KindNumber,
			Label:          "Precio",
			SchemaProperty: "offers.price",
			Min:            &min,
		}}
	}
	return &registry.ContentType{
		Key: "servicio",
		Definition: models.ContentTypeDefinition{
			Key:        "servicio",
			SchemaType: "Service",
		},
		Active:           true,
		FieldDescriptors: descs,
		Fields:           fields.NewFactory(fields.Deps{}).CreateMany(descs),
	}
}

func TestProjectService(t *testing.T) {
	ctx := context.Background()
	recordID := uuid.New()
	values := &fakeValues{values: map[uuid.UUID]map[string]string{
		recordID: {"_service_price": "149.9"},
	}}
	p := NewProjector(values, nil)

	doc, err := p.Project(ctx, serviceType(t), recordID)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	want := Document{
		"@context": "https://schema.org",
		"@type":    "Service",
		"offers":   map[string]any{"price": 149.9},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectSkipsEmptyAndUnmapped(t *testing.T) {
	ctx := context.Background()
	recordID := uuid.New()
	descs := []fields.Descriptor{
		{ID: "_price", Name: "_price", Type: fields.KindNumber, SchemaProperty: "offers.price"},
		{ID: "_currency", Name: "_currency", Type: fields.KindText, SchemaProperty: "offers.priceCurrency"},
		{ID: "_internal", Name: "_internal", Type: fields.KindText}, // no schema property
	}
	values := &fakeValues{values: map[uuid.UUID]map[string]string{
		recordID: {"_price": "99", "_currency": "", "_internal": "never projected"},
	}}
	p := NewProjector(values, nil)

	doc, err := p.Project(ctx, serviceType(t, descs...), recordID)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	want := Document{
		"@context": "https://schema.org",
		"@type":    "Service",
		"offers":   map[string]any{"price": float64(99)},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("empty and unmapped values must not appear (-want +got):\n%s", diff)
	}
}

func TestProjectStorageError(t *testing.T) {
	values := &fakeValues{err: errors.New("db down")}
	p := NewProjector(values, nil)

	if _, err := p.Project(context.Background(), serviceType(t), uuid.New()); err == nil {
		t.Fatal("storage failure should propagate")
	}
}

func TestProjectAppliesSettings(t *testing.T) {
	ctx := context.Background()
	recordID := uuid.New()
	values := &fakeValues{values: map[uuid.UUID]map[string]string{
		recordID: {"_service_price": "149.9"},
	}}

	t.Run("context override and publisher block", func(t *testing.T) {
		settings := &fakeSettings{settings: models.Settings{
			models.SettingSchemaContext: "https://schema.org/",
			models.SettingPublisherName: "Acme SEO",
		}}
		p := NewProjector(values, settings)

		doc, err := p.Project(ctx, serviceType(t), recordID)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if doc["@context"] != "https://schema.org/" {
			t.Errorf("@context = %v, want override", doc["@context"])
		}
		want := map[string]any{"@type": "Organization", "name": "Acme SEO"}
		if diff := cmp.Diff(want, doc["publisher"]); diff != "" {
			t.Errorf("publisher block mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no publisher when name unset", func(t *testing.T) {
		p := NewProjector(values, &fakeSettings{settings: models.Settings{}})
		doc, err := p.Project(ctx, serviceType(t), recordID)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if _, ok := doc["publisher"]; ok {
			t.Error("publisher block emitted without a publisher name")
		}
	})

	t.Run("settings failure degrades to defaults", func(t *testing.T) {
		p := NewProjector(values, &fakeSettings{err: errors.New("db down")})
		doc, err := p.Project(ctx, serviceType(t), recordID)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if doc["@context"] != "https://schema.org" {
			t.Errorf("@context = %v, want default", doc["@context"])
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		ok   bool
	}{
		{name: "name present", doc: Document{"name": "Consultoria SEO"}, ok: true},
		{name: "headline accepted", doc: Document{"headline": "A post"}, ok: true},
		{name: "non-string name accepted", doc: Document{"name": 7}, ok: true},
		{name: "missing", doc: Document{"@type": "Service"}, ok: false},
		{name: "blank name rejected", doc: Document{"name": "   "}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			if tt.ok && err != nil {
				t.Errorf("want valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrMissingName) {
				t.Errorf("want ErrMissingName, got %v", err)
			}
		})
	}
}
