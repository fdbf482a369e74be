package models

import (
	"strings"
	"time"
)

// Attachment is the stored metadata of an uploaded file. Image fields
// reference attachments by integer id; their validators only ever read
// this metadata, never the file bytes.
type Attachment struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	AltText     *string   `json:"alt_text,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsImage returns true if the attachment is an image type.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}
