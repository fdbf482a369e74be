package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
)

// FieldGroup is a named, activatable bundle of field descriptors shown
// on every content type listed in Locations. A record's editable field
// set is the union of all active groups targeting its content type.
type FieldGroup struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Locations []string            `json:"locations"`
	Fields    []fields.Descriptor `json:"fields"`
	Active    bool                `json:"active"`
	Position  int                 `json:"position"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// AppliesTo reports whether the group targets the given content type.
func (g *FieldGroup) AppliesTo(typeKey string) bool {
	for _, loc := range g.Locations {
		if loc == typeKey {
			return true
		}
	}
	return false
}
