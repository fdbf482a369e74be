package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
	"github.com/davidum2/seo-content-structure-sub000/internal/schema"
)

// RecordFinder is the record lookup the public surface depends on.
type RecordFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
}

// Public groups the public-facing handlers: JSON-LD documents for
// published records, and the health endpoint. It checks the Valkey
// document cache before projecting, and stores results on miss.
type Public struct {
	registry  *registry.Registry
	records   RecordFinder
	projector *schema.Projector
	docCache  DocumentCache
}

// NewPublic creates a new Public handler group. docCache may be nil.
func NewPublic(reg *registry.Registry, records RecordFinder, projector *schema.Projector, docCache DocumentCache) *Public {
	return &Public{
		registry:  reg,
		records:   records,
		projector: projector,
		docCache:  docCache,
	}
}

// Schema serves the JSON-LD structured-data document for one published
// record. Unknown types, non-queryable types, drafts and type/record
// mismatches are all a plain 404: the public surface never explains
// which part was wrong.
func (p *Public) Schema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeKey := chi.URLParam(r, "typeKey")

	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if p.docCache != nil {
		if cached := p.docCache.Get(ctx, typeKey, recordID); cached != nil {
			writeDocument(w, cached)
			return
		}
	}

	ct, err := p.registry.Get(ctx, typeKey)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("load content type failed", "error", err, "type", typeKey)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ct.Active || !*ct.Definition.Args.PubliclyQueryable {
		http.NotFound(w, r)
		return
	}

	record, err := p.records.FindByID(ctx, recordID)
	if err != nil {
		slog.Error("find record failed", "error", err, "id", recordID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if record == nil || record.TypeKey != typeKey || !record.IsPublished() {
		http.NotFound(w, r)
		return
	}

	doc, err := p.projector.Project(ctx, ct, recordID)
	if err != nil {
		slog.Error("project document failed", "error", err, "type", typeKey, "record", recordID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if record.Title != "" {
		if _, ok := doc["name"]; !ok {
			doc["name"] = record.Title
		}
	}
	if err := schema.Validate(doc); err != nil {
		slog.Warn("document fails minimum shape, serving anyway",
			"type", typeKey, "record", recordID, "error", err)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		slog.Error("encode document failed", "error", err, "record", recordID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.docCache != nil {
		p.docCache.Set(ctx, typeKey, recordID, encoded)
	}
	writeDocument(w, encoded)
}

func writeDocument(w http.ResponseWriter, doc []byte) {
	w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
	w.Write(doc)
}

// Health reports process liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
