package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

// FieldGroupStore persists field groups. Locations and field
// descriptors are stored as JSON text columns; a group whose JSON no
// longer parses is surfaced with empty fields rather than failing the
// whole listing.
type FieldGroupStore struct {
	db *sql.DB
}

// NewFieldGroupStore creates a new FieldGroupStore with the given
// database connection.
func NewFieldGroupStore(db *sql.DB) *FieldGroupStore {
	return &FieldGroupStore{db: db}
}

const fieldGroupColumns = `id, title, locations, fields, active, position, created_at, updated_at`

func scanFieldGroup(scan func(...any) error) (*models.FieldGroup, error) {
	var g models.FieldGroup
	var locations, descriptors []byte
	if err := scan(&g.ID, &g.Title, &locations, &descriptors, &g.Active, &g.Position,
		&g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if len(locations) > 0 {
		if err := json.Unmarshal(locations, &g.Locations); err != nil {
			slog.Warn("field group locations undecodable", "id", g.ID, "error", err)
		}
	}
	if len(descriptors) > 0 {
		if err := json.Unmarshal(descriptors, &g.Fields); err != nil {
			slog.Warn("field group fields undecodable", "id", g.ID, "error", err)
		}
	}
	return &g, nil
}

// FindByID retrieves a field group by id. Returns nil if not found.
func (s *FieldGroupStore) FindByID(ctx context.Context, id uuid.UUID) (*models.FieldGroup, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+fieldGroupColumns+` FROM field_groups WHERE id = $1`, id)
	g, err := scanFieldGroup(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find field group: %w", err)
	}
	return g, nil
}

// List returns every field group ordered by position.
func (s *FieldGroupStore) List(ctx context.Context) ([]models.FieldGroup, error) {
	return s.list(ctx, `SELECT `+fieldGroupColumns+` FROM field_groups ORDER BY position, created_at`)
}

// ListActive returns the active field groups ordered by position.
func (s *FieldGroupStore) ListActive(ctx context.Context) ([]models.FieldGroup, error) {
	return s.list(ctx, `SELECT `+fieldGroupColumns+` FROM field_groups WHERE active ORDER BY position, created_at`)
}

func (s *FieldGroupStore) list(ctx context.Context, query string) ([]models.FieldGroup, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list field groups: %w", err)
	}
	defer rows.Close()

	var groups []models.FieldGroup
	for rows.Next() {
		g, err := scanFieldGroup(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan field group: %w", err)
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// Create inserts a new field group and returns it with the generated id.
func (s *FieldGroupStore) Create(ctx context.Context, g *models.FieldGroup) (*models.FieldGroup, error) {
	locations, descriptors, err := encodeFieldGroup(g)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO field_groups (title, locations, fields, active, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+fieldGroupColumns,
		g.Title, locations, descriptors, g.Active, g.Position)
	created, err := scanFieldGroup(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("create field group: %w", err)
	}
	return created, nil
}

// Update modifies an existing field group.
func (s *FieldGroupStore) Update(ctx context.Context, g *models.FieldGroup) error {
	locations, descriptors, err := encodeFieldGroup(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE field_groups SET
			title = $1, locations = $2, fields = $3, active = $4, position = $5,
			updated_at = NOW()
		WHERE id = $6
	`, g.Title, locations, descriptors, g.Active, g.Position, g.ID)
	if err != nil {
		return fmt.Errorf("update field group: %w", err)
	}
	return nil
}

// Delete removes a field group by id.
func (s *FieldGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM field_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete field group: %w", err)
	}
	return nil
}

func encodeFieldGroup(g *models.FieldGroup) ([]byte, []byte, error) {
	if g.Locations == nil {
		g.Locations = []string{}
	}
	if g.Fields == nil {
		g.Fields = []fields.Descriptor{}
	}
	locations, err := json.Marshal(g.Locations)
	if err != nil {
		return nil, nil, fmt.Errorf("encode field group locations: %w", err)
	}
	descriptors, err := json.Marshal(g.Fields)
	if err != nil {
		return nil, nil, fmt.Errorf("encode field group fields: %w", err)
	}
	return locations, descriptors, nil
}
