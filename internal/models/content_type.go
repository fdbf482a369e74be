package models

import "time"

// Labels holds the human-facing names for a content type. SingularName and
// Name (plural) are the required minimum; the rest default from them.
type Labels struct {
	Name         string `json:"name"`
	SingularName string `json:"singular_name"`
	AddNew       string `json:"add_new,omitempty"`
	EditItem     string `json:"edit_item,omitempty"`
	ViewItem     string `json:"view_item,omitempty"`
	SearchItems  string `json:"search_items,omitempty"`
	NotFound     string `json:"not_found,omitempty"`
}

// TypeArgs carries the behavioral settings of a content type: visibility,
// URL rewriting, admin presentation and supported features.
//
// The boolean visibility flags are pointers so that "not set" can be told
// apart from an explicit false; the registry fills unset flags with
// defaults on save and on load.
type TypeArgs struct {
	Labels            Labels   `json:"labels"`
	Description       string   `json:"description,omitempty"`
	Public            *bool    `json:"public,omitempty"`
	PubliclyQueryable *bool    `json:"publicly_queryable,omitempty"`
	ShowInAdminBar    *bool    `json:"show_in_admin_bar,omitempty"`
	Hierarchical      bool     `json:"hierarchical,omitempty"`
	MenuIcon          string   `json:"menu_icon,omitempty"`
	RewriteSlug       string   `json:"rewrite_slug,omitempty"`
	Supports          []string `json:"supports,omitempty"`
}

// ContentTypeDefinition is the persisted declarative description of a
// custom record kind. It is stored as a JSON blob in the content_types
// table, keyed by Key.
type ContentTypeDefinition struct {
	Key        string   `json:"post_type_key"`
	Args       TypeArgs `json:"args"`
	Taxonomies []string `json:"taxonomies,omitempty"`
	SchemaType string   `json:"schema_type,omitempty"`
}

// ContentTypeRow is a raw persisted content-type row: the opaque config
// blob plus its activation flag. Decoding the blob is the registry's job.
type ContentTypeRow struct {
	Key       string    `json:"key"`
	Config    []byte    `json:"config"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
