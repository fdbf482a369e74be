package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
)

// RecordStorage is the record persistence the admin handlers depend on.
type RecordStorage interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	ListByType(ctx context.Context, typeKey string) ([]models.Record, error)
	Create(ctx context.Context, r *models.Record) (*models.Record, error)
	Update(ctx context.Context, r *models.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	Values(ctx context.Context, recordID uuid.UUID) (map[string]string, error)
	SetValues(ctx context.Context, recordID uuid.UUID, values map[string]string) error
}

// GroupStorage is the field-group persistence the admin handlers depend on.
type GroupStorage interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.FieldGroup, error)
	List(ctx context.Context) ([]models.FieldGroup, error)
	Create(ctx context.Context, g *models.FieldGroup) (*models.FieldGroup, error)
	Update(ctx context.Context, g *models.FieldGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentCache invalidates and serves cached JSON-LD documents.
// May be nil when Valkey is not configured.
type DocumentCache interface {
	Get(ctx context.Context, typeKey string, recordID uuid.UUID) []byte
	Set(ctx context.Context, typeKey string, recordID uuid.UUID, doc []byte)
	InvalidateRecord(ctx context.Context, typeKey string, recordID uuid.UUID)
	InvalidateType(ctx context.Context, typeKey string)
}

// Admin groups the admin JSON API handlers and their dependencies.
type Admin struct {
	registry *registry.Registry
	groups   GroupStorage
	records  RecordStorage
	docCache DocumentCache
}

// NewAdmin creates a new Admin handler group. docCache may be nil.
func NewAdmin(reg *registry.Registry, groups GroupStorage, records RecordStorage, docCache DocumentCache) *Admin {
	return &Admin{
		registry: reg,
		groups:   groups,
		records:  records,
		docCache: docCache,
	}
}

// typeView is the JSON shape a materialized content type is listed as.
type typeView struct {
	Key        string                       `json:"key"`
	Definition models.ContentTypeDefinition `json:"definition"`
	Active     bool                         `json:"active"`
	HasFields  bool                         `json:"has_fields"`
}

func viewOf(ct *registry.ContentType) typeView {
	return typeView{
		Key:        ct.Key,
		Definition: ct.Definition,
		Active:     ct.Active,
		HasFields:  ct.HasFields(),
	}
}

// TypesList returns every active content type.
func (a *Admin) TypesList(w http.ResponseWriter, r *http.Request) {
	types, err := a.registry.GetAllActive(r.Context())
	if err != nil {
		respondRegistryError(w, err)
		return
	}
	views := make([]typeView, 0, len(types))
	for _, ct := range types {
		views = append(views, viewOf(ct))
	}
	respondJSON(w, http.StatusOK, map[string]any{"types": views})
}

// TypeGet returns one content type by key.
func (a *Admin) TypeGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	ct, err := a.registry.Get(r.Context(), key)
	if err != nil {
		respondRegistryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, viewOf(ct))
}

// TypeSave validates and persists a content-type definition, upserting
// by key. Returns the saved, defaulted definition.
func (a *Admin) TypeSave(w http.ResponseWriter, r *http.Request) {
	var def models.ContentTypeDefinition
	if err := decodeBody(r, &def); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	key, err := a.registry.Save(r.Context(), def)
	if err != nil {
		respondRegistryError(w, err)
		return
	}

	if a.docCache != nil {
		a.docCache.InvalidateType(r.Context(), key)
	}

	ct, err := a.registry.Get(r.Context(), key)
	if err != nil {
		respondRegistryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, viewOf(ct))
}

// TypeActivate marks a content type active.
func (a *Admin) TypeActivate(w http.ResponseWriter, r *http.Request) {
	a.setActive(w, r, true)
}

// TypeDeactivate marks a content type inactive. It stays editable but
// drops out of listings and public serving.
func (a *Admin) TypeDeactivate(w http.ResponseWriter, r *http.Request) {
	a.setActive(w, r, false)
}

func (a *Admin) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	key := chi.URLParam(r, "key")
	if err := a.registry.SetActive(r.Context(), key, active); err != nil {
		respondRegistryError(w, err)
		return
	}
	if a.docCache != nil {
		a.docCache.InvalidateType(r.Context(), key)
	}
	respondJSON(w, http.StatusOK, map[string]any{"key": key, "active": active})
}

// TypeDelete removes a content-type definition. Reserved keys are refused.
func (a *Admin) TypeDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := a.registry.Delete(r.Context(), key); err != nil {
		respondRegistryError(w, err)
		return
	}
	if a.docCache != nil {
		a.docCache.InvalidateType(r.Context(), key)
	}
	w.WriteHeader(http.StatusNoContent)
}
