package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/models"
	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
)

// RecordsList returns every record of a content type, newest first.
func (a *Admin) RecordsList(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if _, err := a.registry.Get(r.Context(), key); err != nil {
		respondRegistryError(w, err)
		return
	}
	records, err := a.records.ListByType(r.Context(), key)
	if err != nil {
		slog.Error("list records failed", "error", err, "type", key)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"records": records})
}

// RecordCreate inserts a new record for an existing content type.
func (a *Admin) RecordCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TypeKey string `json:"type_key"`
		Title   string `json:"title"`
		Status  string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if msg := validateRecordTitle(req.Title); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if _, err := a.registry.Get(r.Context(), req.TypeKey); err != nil {
		respondRegistryError(w, err)
		return
	}

	created, err := a.records.Create(r.Context(), &models.Record{
		TypeKey: req.TypeKey,
		Title:   req.Title,
		Status:  models.RecordStatus(req.Status),
	})
	if err != nil {
		slog.Error("create record failed", "error", err, "type", req.TypeKey)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// fieldFragment is one editable field rendered for the admin form.
type fieldFragment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	HTML  string `json:"html"`
}

// RecordForm returns the record's editable field set as rendered admin
// markup fragments, values loaded from storage.
func (a *Admin) RecordForm(w http.ResponseWriter, r *http.Request) {
	record, ct, ok := a.loadRecord(w, r)
	if !ok {
		return
	}

	fs, err := a.editFieldsWithValues(r, record, ct)
	if err != nil {
		slog.Error("load record values failed", "error", err, "record", record.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	fragments := make([]fieldFragment, 0, len(fs))
	for _, f := range fs {
		fragments = append(fragments, fieldFragment{
			ID:    f.ID(),
			Name:  f.Name(),
			Kind:  string(f.Kind()),
			Label: f.Label(),
			HTML:  string(f.RenderAdmin()),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"record": record,
		"fields": fragments,
	})
}

// RecordSave validates and persists submitted field values for a
// record. The save is all-or-nothing: every field validates before
// anything is written, and violations come back per-field with a 422.
func (a *Admin) RecordSave(w http.ResponseWriter, r *http.Request) {
	record, ct, ok := a.loadRecord(w, r)
	if !ok {
		return
	}

	var req struct {
		Title  string         `json:"title"`
		Status string         `json:"status"`
		Values map[string]any `json:"values"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	fs := a.registry.EditFields(ct)
	for _, f := range fs {
		if raw, ok := req.Values[f.Name()]; ok {
			f.SetValue(raw)
		}
	}

	if errs := fields.ValidateAll(r.Context(), fs); len(errs) > 0 {
		violations := make([]map[string]string, 0, len(errs))
		for _, e := range errs {
			violations = append(violations, map[string]string{
				"field":   e.Field,
				"kind":    string(e.Kind),
				"message": e.Message,
			})
		}
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": violations})
		return
	}

	stored := make(map[string]string, len(req.Values))
	for _, f := range fs {
		raw, ok := req.Values[f.Name()]
		if !ok {
			continue
		}
		stored[f.Name()] = f.Sanitize(raw)
	}
	if err := a.records.SetValues(r.Context(), record.ID, stored); err != nil {
		slog.Error("save record values failed", "error", err, "record", record.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.Title != "" || req.Status != "" {
		if req.Title != "" {
			if msg := validateRecordTitle(req.Title); msg != "" {
				respondError(w, http.StatusUnprocessableEntity, msg)
				return
			}
			record.Title = req.Title
		}
		if req.Status != "" {
			record.Status = models.RecordStatus(req.Status)
		}
		if err := a.records.Update(r.Context(), record); err != nil {
			slog.Error("update record failed", "error", err, "record", record.ID)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	if a.docCache != nil {
		a.docCache.InvalidateRecord(r.Context(), record.TypeKey, record.ID)
	}
	respondJSON(w, http.StatusOK, map[string]any{"record": record, "saved": len(stored)})
}

// RecordDelete removes a record and all of its values.
func (a *Admin) RecordDelete(w http.ResponseWriter, r *http.Request) {
	record, _, ok := a.loadRecord(w, r)
	if !ok {
		return
	}
	if err := a.records.Delete(r.Context(), record.ID); err != nil {
		slog.Error("delete record failed", "error", err, "record", record.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if a.docCache != nil {
		a.docCache.InvalidateRecord(r.Context(), record.TypeKey, record.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadRecord resolves the {id} route parameter to a record and its
// materialized content type, writing the error response itself when
// either is missing.
func (a *Admin) loadRecord(w http.ResponseWriter, r *http.Request) (*models.Record, *registry.ContentType, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid record id")
		return nil, nil, false
	}
	record, err := a.records.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find record failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "record not found")
		return nil, nil, false
	}
	ct, err := a.registry.Get(r.Context(), record.TypeKey)
	if err != nil {
		respondRegistryError(w, err)
		return nil, nil, false
	}
	return record, ct, true
}

// editFieldsWithValues materializes a fresh field set for the record's
// type and loads the stored values into it.
func (a *Admin) editFieldsWithValues(r *http.Request, record *models.Record, ct *registry.ContentType) ([]fields.Field, error) {
	values, err := a.records.Values(r.Context(), record.ID)
	if err != nil {
		return nil, err
	}
	fs := a.registry.EditFields(ct)
	for _, f := range fs {
		if v, ok := values[f.Name()]; ok {
			f.SetValue(v)
		}
	}
	return fs, nil
}
