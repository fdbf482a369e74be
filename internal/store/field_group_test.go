package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

func TestFieldGroupStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewFieldGroupStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanGroups(t, db, "Test Datos") })

	min := 0.0
	created, err := s.Create(ctx, &models.FieldGroup{
		Title:     "Test Datos",
		Locations: []string{"servicio"},
		Active:    true,
		Position:  3,
		Fields: []fields.Descriptor{{
			ID:             "price",
			Name:           "_service_price",
			Type:           fields.KindNumber,
			Label:          "Precio",
			SchemaProperty: "offers.price",
			Min:            &min,
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created group has no id")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("FindByID returned nil for existing group")
	}
	if len(found.Locations) != 1 || found.Locations[0] != "servicio" {
		t.Errorf("locations = %v", found.Locations)
	}
	if len(found.Fields) != 1 {
		t.Fatalf("fields = %v", found.Fields)
	}
	d := found.Fields[0]
	if d.ID != "price" || d.Type != fields.KindNumber || d.SchemaProperty != "offers.price" {
		t.Errorf("descriptor did not round-trip: %+v", d)
	}
	if d.Min == nil || *d.Min != 0 {
		t.Errorf("numeric bound lost: %v", d.Min)
	}
}

func TestFieldGroupStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewFieldGroupStore(db)

	g, err := s.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if g != nil {
		t.Errorf("missing group should be nil, got %+v", g)
	}
}

func TestFieldGroupStoreListActive(t *testing.T) {
	db := testDB(t)
	s := NewFieldGroupStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanGroups(t, db, "Test Active", "Test Inactive") })

	if _, err := s.Create(ctx, &models.FieldGroup{Title: "Test Active", Active: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, &models.FieldGroup{Title: "Test Inactive", Active: false}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, g := range active {
		if g.Title == "Test Inactive" {
			t.Error("inactive group leaked into ListActive")
		}
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := map[string]bool{}
	for _, g := range all {
		seen[g.Title] = true
	}
	if !seen["Test Active"] || !seen["Test Inactive"] {
		t.Error("List should include both groups")
	}
}

func TestFieldGroupStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewFieldGroupStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanGroups(t, db, "Test Update", "Test Updated") })

	g, err := s.Create(ctx, &models.FieldGroup{
		Title:     "Test Update",
		Locations: []string{"servicio"},
		Active:    true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	g.Title = "Test Updated"
	g.Locations = []string{"servicio", "evento"}
	g.Fields = []fields.Descriptor{{ID: "venue", Type: fields.KindText}}
	if err := s.Update(ctx, g); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Title != "Test Updated" || len(found.Locations) != 2 || len(found.Fields) != 1 {
		t.Errorf("update not applied: %+v", found)
	}
}

func TestFieldGroupStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewFieldGroupStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanGroups(t, db, "Test Delete") })

	g, err := s.Create(ctx, &models.FieldGroup{Title: "Test Delete", Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("group survived delete")
	}
}
