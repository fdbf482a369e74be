package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

// ContentTypeStore persists content-type rows: an opaque config blob
// plus an activation flag, keyed by the type key. Decoding the blob is
// the registry's concern; this layer never looks inside it.
type ContentTypeStore struct {
	db *sql.DB
}

// NewContentTypeStore creates a new ContentTypeStore with the given
// database connection.
func NewContentTypeStore(db *sql.DB) *ContentTypeStore {
	return &ContentTypeStore{db: db}
}

// GetRow retrieves one row by key. Returns nil if not found.
func (s *ContentTypeStore) GetRow(ctx context.Context, key string) (*models.ContentTypeRow, error) {
	row := &models.ContentTypeRow{}
	err := s.db.QueryRowContext(ctx, `
		SELECT key, config, active, created_at, updated_at
		FROM content_types WHERE key = $1
	`, key).Scan(&row.Key, &row.Config, &row.Active, &row.CreatedAt, &row.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content type row: %w", err)
	}
	return row, nil
}

// ListRows returns every persisted row, active or not, ordered by key.
func (s *ContentTypeStore) ListRows(ctx context.Context) ([]models.ContentTypeRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, config, active, created_at, updated_at
		FROM content_types ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("list content type rows: %w", err)
	}
	defer rows.Close()

	var items []models.ContentTypeRow
	for rows.Next() {
		var r models.ContentTypeRow
		if err := rows.Scan(&r.Key, &r.Config, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan content type row: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// UpsertRow inserts or updates the row for key.
func (s *ContentTypeStore) UpsertRow(ctx context.Context, key string, config []byte, active bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_types (key, config, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET config = EXCLUDED.config, active = EXCLUDED.active, updated_at = NOW()
	`, key, config, active)
	if err != nil {
		return fmt.Errorf("upsert content type row: %w", err)
	}
	return nil
}

// SetActive updates only the activation flag.
func (s *ContentTypeStore) SetActive(ctx context.Context, key string, active bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE content_types SET active = $1, updated_at = NOW() WHERE key = $2
	`, active, key)
	if err != nil {
		return fmt.Errorf("set content type active: %w", err)
	}
	return nil
}

// DeleteRow removes the row for key.
func (s *ContentTypeStore) DeleteRow(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM content_types WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete content type row: %w", err)
	}
	return nil
}
