package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

// GroupsList returns every field group, active or not.
func (a *Admin) GroupsList(w http.ResponseWriter, r *http.Request) {
	groups, err := a.groups.List(r.Context())
	if err != nil {
		slog.Error("list field groups failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

// GroupGet returns one field group by id.
func (a *Admin) GroupGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	g, err := a.groups.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find field group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if g == nil {
		respondError(w, http.StatusNotFound, "field group not found")
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// GroupCreate inserts a new field group.
func (a *Admin) GroupCreate(w http.ResponseWriter, r *http.Request) {
	var g models.FieldGroup
	if err := decodeBody(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if msg := validateGroup(g.Title, len(g.Locations), len(g.Fields)); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := a.groups.Create(r.Context(), &g)
	if err != nil {
		slog.Error("create field group failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	a.groupChanged(r, created.Locations)
	respondJSON(w, http.StatusCreated, created)
}

// GroupUpdate replaces an existing field group.
func (a *Admin) GroupUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	existing, err := a.groups.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find field group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "field group not found")
		return
	}

	var g models.FieldGroup
	if err := decodeBody(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if msg := validateGroup(g.Title, len(g.Locations), len(g.Fields)); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	g.ID = id

	if err := a.groups.Update(r.Context(), &g); err != nil {
		slog.Error("update field group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Invalidate both the old and new target types: a location removed
	// from the group changes that type's field set too.
	a.groupChanged(r, append(existing.Locations, g.Locations...))
	respondJSON(w, http.StatusOK, &g)
}

// GroupDelete removes a field group.
func (a *Admin) GroupDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	existing, err := a.groups.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find field group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "field group not found")
		return
	}

	if err := a.groups.Delete(r.Context(), id); err != nil {
		slog.Error("delete field group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	a.groupChanged(r, existing.Locations)
	w.WriteHeader(http.StatusNoContent)
}

// groupChanged flushes everything derived from field groups: the
// materialized content types and the cached documents of every type the
// group targeted.
func (a *Admin) groupChanged(r *http.Request, locations []string) {
	a.registry.InvalidateAll()
	if a.docCache == nil {
		return
	}
	seen := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		a.docCache.InvalidateType(r.Context(), loc)
	}
}
