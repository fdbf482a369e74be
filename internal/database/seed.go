package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a sample
// "servicio" content type, a field group with a price field projected to
// offers.price, and one published record. Safe to call on every boot —
// it only inserts when no content types exist yet.
func Seed(db *sql.DB) error {
	// Check if any content types exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM content_types").Scan(&count); err != nil {
		return fmt.Errorf("seed check content types: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	typeConfig := `{
		"post_type_key": "servicio",
		"args": {
			"labels": {"name": "Servicios", "singular_name": "Servicio"},
			"public": true,
			"publicly_queryable": true,
			"show_in_admin_bar": true,
			"rewrite_slug": "servicio",
			"supports": ["title", "editor"]
		},
		"taxonomies": [],
		"schema_type": "Service"
	}`

	if _, err := tx.Exec(`
		INSERT INTO content_types (key, config, active)
		VALUES ($1, $2, TRUE)
	`, "servicio", typeConfig); err != nil {
		return fmt.Errorf("seed insert content type: %w", err)
	}

	groupFields := `[
		{
			"id": "precio",
			"name": "_service_price",
			"type": "number",
			"label": "Precio",
			"schema_property": "offers.price",
			"min": 0
		}
	]`

	if _, err := tx.Exec(`
		INSERT INTO field_groups (title, locations, fields, active, position)
		VALUES ($1, $2, $3, TRUE, 0)
	`, "Datos del servicio", `["servicio"]`, groupFields); err != nil {
		return fmt.Errorf("seed insert field group: %w", err)
	}

	var recordID string
	if err := tx.QueryRow(`
		INSERT INTO records (type_key, title, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "servicio", "Consultoria SEO", "published").Scan(&recordID); err != nil {
		return fmt.Errorf("seed insert record: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO record_values (record_id, key, value)
		VALUES ($1, $2, $3)
	`, recordID, "_service_price", "149.9"); err != nil {
		return fmt.Errorf("seed insert record value: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO settings (key, value)
		VALUES ('schema_context', 'https://schema.org')
		ON CONFLICT (key) DO NOTHING
	`); err != nil {
		return fmt.Errorf("seed insert settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample content type",
		"type", "servicio",
		"record", recordID,
	)

	return nil
}
