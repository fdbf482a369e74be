package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordStatus represents the publishing state of a record.
type RecordStatus string

const (
	RecordStatusDraft     RecordStatus = "draft"
	RecordStatusPublished RecordStatus = "published"
)

// Record is one stored item of a custom content type. The record row only
// carries identity and lifecycle; every editable attribute lives in the
// flat record_values key/value table, typed by the field definitions.
type Record struct {
	ID        uuid.UUID    `json:"id"`
	TypeKey   string       `json:"type_key"`
	Title     string       `json:"title"`
	Status    RecordStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IsPublished returns true if the record is in published status.
func (r *Record) IsPublished() bool {
	return r.Status == RecordStatusPublished
}
