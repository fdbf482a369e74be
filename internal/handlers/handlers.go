// Package handlers contains the HTTP handlers for the seocs server.
// Handlers are grouped by concern (admin, public) and receive their
// dependencies through the handler struct. All admin endpoints speak
// JSON; the public surface serves JSON-LD documents.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a uniform JSON error body.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondRegistryError maps the registry's failure taxonomy onto HTTP
// statuses: missing types are 404, reserved keys 409, rejected
// definitions 422, and anything else a 500.
func respondRegistryError(w http.ResponseWriter, err error) {
	var verr *registry.ValidationError
	switch {
	case errors.Is(err, registry.ErrNotFound):
		respondError(w, http.StatusNotFound, "content type not found")
	case errors.Is(err, registry.ErrReserved):
		respondError(w, http.StatusConflict, "content type key is reserved")
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": verr.Reason,
			"field": verr.Field,
		})
	default:
		slog.Error("registry operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes a JSON request body into dst, rejecting unknown
// fields so typos surface instead of silently dropping data.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
