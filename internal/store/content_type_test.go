package store

import (
	"context"
	"testing"
)

func TestContentTypeStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewContentTypeStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanTypes(t, db, "test_evento") })

	config := []byte(`{"post_type_key":"test_evento","schema_type":"Event"}`)
	if err := s.UpsertRow(ctx, "test_evento", config, true); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}

	row, err := s.GetRow(ctx, "test_evento")
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if row == nil {
		t.Fatal("GetRow returned nil for existing row")
	}
	if string(row.Config) != string(config) {
		t.Errorf("config = %s", row.Config)
	}
	if !row.Active {
		t.Error("new row should be active")
	}
}

func TestContentTypeStoreGetMissing(t *testing.T) {
	db := testDB(t)
	s := NewContentTypeStore(db)

	row, err := s.GetRow(context.Background(), "no_such_type")
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if row != nil {
		t.Errorf("missing row should be nil, got %+v", row)
	}
}

func TestContentTypeStoreUpsertReplaces(t *testing.T) {
	db := testDB(t)
	s := NewContentTypeStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanTypes(t, db, "test_evento") })

	if err := s.UpsertRow(ctx, "test_evento", []byte(`{"v":1}`), true); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}
	if err := s.UpsertRow(ctx, "test_evento", []byte(`{"v":2}`), false); err != nil {
		t.Fatalf("re-UpsertRow: %v", err)
	}

	row, err := s.GetRow(ctx, "test_evento")
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if string(row.Config) != `{"v":2}` || row.Active {
		t.Errorf("upsert did not replace: config=%s active=%v", row.Config, row.Active)
	}
}

func TestContentTypeStoreSetActive(t *testing.T) {
	db := testDB(t)
	s := NewContentTypeStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanTypes(t, db, "test_evento") })

	if err := s.UpsertRow(ctx, "test_evento", []byte(`{}`), true); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}
	if err := s.SetActive(ctx, "test_evento", false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	row, err := s.GetRow(ctx, "test_evento")
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if row.Active {
		t.Error("row still active after SetActive(false)")
	}
}

func TestContentTypeStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewContentTypeStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanTypes(t, db, "test_evento") })

	if err := s.UpsertRow(ctx, "test_evento", []byte(`{}`), true); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}
	if err := s.DeleteRow(ctx, "test_evento"); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	row, err := s.GetRow(ctx, "test_evento")
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if row != nil {
		t.Error("row survived delete")
	}
}

func TestContentTypeStoreList(t *testing.T) {
	db := testDB(t)
	s := NewContentTypeStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanTypes(t, db, "test_list_a", "test_list_b") })

	if err := s.UpsertRow(ctx, "test_list_a", []byte(`{}`), true); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}
	if err := s.UpsertRow(ctx, "test_list_b", []byte(`{}`), false); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}

	rows, err := s.ListRows(ctx)
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	seen := map[string]bool{}
	for _, r := range rows {
		seen[r.Key] = r.Active
	}
	if !seen["test_list_a"] {
		t.Error("active row missing or inactive in listing")
	}
	if active, ok := seen["test_list_b"]; !ok || active {
		t.Error("inactive row should be listed with its flag intact")
	}
}
