// Package router sets up all HTTP routes and middleware chains for the
// seocs server. Routes are organized into the admin JSON API and the
// public structured-data surface.
package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/davidum2/seo-content-structure-sub000/internal/handlers"
	"github.com/davidum2/seo-content-structure-sub000/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", public.Health)

	// Admin JSON API. Authentication is the host platform's concern;
	// deployments front this with their own access layer.
	r.Route("/admin", func(r chi.Router) {
		// Content-type definitions.
		r.Route("/types", func(r chi.Router) {
			r.Get("/", admin.TypesList)
			r.Post("/", admin.TypeSave)
			r.Get("/{key}", admin.TypeGet)
			r.Delete("/{key}", admin.TypeDelete)
			r.Post("/{key}/activate", admin.TypeActivate)
			r.Post("/{key}/deactivate", admin.TypeDeactivate)
			r.Get("/{key}/records", admin.RecordsList)
		})

		// Field groups.
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", admin.GroupsList)
			r.Post("/", admin.GroupCreate)
			r.Get("/{id}", admin.GroupGet)
			r.Put("/{id}", admin.GroupUpdate)
			r.Delete("/{id}", admin.GroupDelete)
		})

		// Records and their field values.
		r.Route("/records", func(r chi.Router) {
			r.Post("/", admin.RecordCreate)
			r.Get("/{id}/form", admin.RecordForm)
			r.Put("/{id}", admin.RecordSave)
			r.Delete("/{id}", admin.RecordDelete)
		})
	})

	// Public structured-data documents.
	r.Get("/schema/{typeKey}/{recordID}", public.Schema)

	return r
}
