package database

import (
	"encoding/json"
	"testing"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed should be callable safely — it creates data only when no
	// content types exist. We call it twice to verify idempotency. We
	// don't clear the database first because other test packages may be
	// running concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Verify the sample content type exists.
	var typeCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM content_types WHERE key = 'servicio'").Scan(&typeCount); err != nil {
		t.Fatalf("count content types: %v", err)
	}
	if typeCount != 1 {
		t.Errorf("expected exactly 1 servicio content type, got %d", typeCount)
	}

	// Verify a field group targets it.
	var groupCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM field_groups").Scan(&groupCount); err != nil {
		t.Fatalf("count field groups: %v", err)
	}
	if groupCount < 1 {
		t.Errorf("expected at least 1 field group, got %d", groupCount)
	}

	// Verify the sample record carries a stored value under the same key
	// the field group declares as the field's storage name, so the value
	// is reachable when the record is projected.
	var fieldsJSON string
	if err := db.QueryRow(`
		SELECT fields FROM field_groups
		WHERE locations LIKE '%servicio%'
		ORDER BY position LIMIT 1
	`).Scan(&fieldsJSON); err != nil {
		t.Fatalf("load seeded field group: %v", err)
	}
	var descs []fields.Descriptor
	if err := json.Unmarshal([]byte(fieldsJSON), &descs); err != nil {
		t.Fatalf("decode seeded fields: %v", err)
	}
	if len(descs) == 0 {
		t.Fatal("seeded field group has no fields")
	}

	var value string
	err = db.QueryRow(`
		SELECT rv.value FROM record_values rv
		JOIN records r ON r.id = rv.record_id
		WHERE r.type_key = 'servicio' AND rv.key = $1
	`, descs[0].StorageKey()).Scan(&value)
	if err != nil {
		t.Fatalf("seeded value not stored under %q: %v", descs[0].StorageKey(), err)
	}
	if value != "149.9" {
		t.Errorf("seeded price = %q, want %q", value, "149.9")
	}
}
