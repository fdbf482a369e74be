package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

// AttachmentStore persists uploaded-file metadata. Image fields resolve
// their referential checks through it; only metadata is ever read here,
// the bytes live wherever the host put them.
type AttachmentStore struct {
	db *sql.DB
}

// NewAttachmentStore creates a new AttachmentStore with the given
// database connection.
func NewAttachmentStore(db *sql.DB) *AttachmentStore {
	return &AttachmentStore{db: db}
}

// FindByID retrieves attachment metadata by id. Returns nil if not found.
func (s *AttachmentStore) FindByID(ctx context.Context, id int64) (*models.Attachment, error) {
	a := &models.Attachment{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, content_type, size_bytes, width, height, alt_text, url, created_at
		FROM attachments WHERE id = $1
	`, id).Scan(&a.ID, &a.Filename, &a.ContentType, &a.SizeBytes,
		&a.Width, &a.Height, &a.AltText, &a.URL, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return a, nil
}

// Create inserts attachment metadata and returns it with the generated id.
func (s *AttachmentStore) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	created := &models.Attachment{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO attachments (filename, content_type, size_bytes, width, height, alt_text, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, filename, content_type, size_bytes, width, height, alt_text, url, created_at
	`, a.Filename, a.ContentType, a.SizeBytes, a.Width, a.Height, a.AltText, a.URL).Scan(
		&created.ID, &created.Filename, &created.ContentType, &created.SizeBytes,
		&created.Width, &created.Height, &created.AltText, &created.URL, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}
	return created, nil
}

// Delete removes attachment metadata by id.
func (s *AttachmentStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

// Attachment implements fields.AttachmentResolver for image field
// validation.
func (s *AttachmentStore) Attachment(ctx context.Context, id int64) (*fields.AttachmentMeta, error) {
	a, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return &fields.AttachmentMeta{
		ID:          a.ID,
		ContentType: a.ContentType,
		Width:       a.Width,
		Height:      a.Height,
		URL:         a.URL,
	}, nil
}
