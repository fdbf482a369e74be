package models

import "time"

// Well-known setting keys used by the schema projector.
const (
	SettingSchemaContext     = "schema_context"
	SettingPublisherName     = "publisher_name"
	SettingPublisherType     = "publisher_type"
	SettingDefaultSchemaType = "default_schema_type"
)

// Setting represents a single global configuration key-value pair.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is a convenience map for accessing settings by key.
type Settings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s Settings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}
