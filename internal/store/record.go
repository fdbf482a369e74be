package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

// RecordStore persists records and their flat key/value field data.
// The value column is schemaless text; only the field layer knows the
// types, and repeater rows arrive here already JSON-encoded.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore creates a new RecordStore with the given database
// connection.
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// FindByID retrieves a record by its UUID. Returns nil if not found.
func (s *RecordStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	r := &models.Record{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, type_key, title, status, created_at, updated_at
		FROM records WHERE id = $1
	`, id).Scan(&r.ID, &r.TypeKey, &r.Title, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find record: %w", err)
	}
	return r, nil
}

// ListByType returns all records of a content type, newest first.
func (s *RecordStore) ListByType(ctx context.Context, typeKey string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type_key, title, status, created_at, updated_at
		FROM records WHERE type_key = $1
		ORDER BY created_at DESC
	`, typeKey)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var items []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.TypeKey, &r.Title, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// Create inserts a new record and returns it with the generated id.
func (s *RecordStore) Create(ctx context.Context, r *models.Record) (*models.Record, error) {
	if r.Status == "" {
		r.Status = models.RecordStatusDraft
	}
	created := &models.Record{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO records (type_key, title, status)
		VALUES ($1, $2, $3)
		RETURNING id, type_key, title, status, created_at, updated_at
	`, r.TypeKey, r.Title, r.Status).Scan(
		&created.ID, &created.TypeKey, &created.Title, &created.Status,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return created, nil
}

// Update modifies a record's title and status.
func (s *RecordStore) Update(ctx context.Context, r *models.Record) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE records SET title = $1, status = $2, updated_at = NOW() WHERE id = $3
	`, r.Title, r.Status, r.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// Delete removes a record and, through the foreign key cascade, all of
// its values.
func (s *RecordStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Value reads one stored value by record and key. Returns the empty
// string when the key has never been written.
func (s *RecordStore) Value(ctx context.Context, recordID uuid.UUID, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM record_values WHERE record_id = $1 AND key = $2
	`, recordID, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read record value: %w", err)
	}
	return v, nil
}

// Values returns every stored key/value pair for a record.
func (s *RecordStore) Values(ctx context.Context, recordID uuid.UUID) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM record_values WHERE record_id = $1
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("list record values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan record value: %w", err)
		}
		values[k] = v
	}
	return values, rows.Err()
}

// SetValue upserts one value for a record.
func (s *RecordStore) SetValue(ctx context.Context, recordID uuid.UUID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO record_values (record_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (record_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, recordID, key, value)
	if err != nil {
		return fmt.Errorf("set record value: %w", err)
	}
	return nil
}

// SetValues upserts multiple values in a single transaction: a record
// save is all-or-nothing.
func (s *RecordStore) SetValues(ctx context.Context, recordID uuid.UUID, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO record_values (record_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (record_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("prepare record save: %w", err)
	}
	defer stmt.Close()

	for k, v := range values {
		if _, err := stmt.ExecContext(ctx, recordID, k, v); err != nil {
			return fmt.Errorf("save record value %q: %w", k, err)
		}
	}
	return tx.Commit()
}
