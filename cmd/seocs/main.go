// Package main is the entry point for the seocs server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidum2/seo-content-structure-sub000/internal/cache"
	"github.com/davidum2/seo-content-structure-sub000/internal/config"
	"github.com/davidum2/seo-content-structure-sub000/internal/database"
	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/handlers"
	"github.com/davidum2/seo-content-structure-sub000/internal/registry"
	"github.com/davidum2/seo-content-structure-sub000/internal/router"
	"github.com/davidum2/seo-content-structure-sub000/internal/schema"
	"github.com/davidum2/seo-content-structure-sub000/internal/store"
)

func main() {
	// Structured logger — text output; ship JSON in production via a
	// wrapper if the platform needs it.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize data stores.
	typeStore := store.NewContentTypeStore(db)
	groupStore := store.NewFieldGroupStore(db)
	recordStore := store.NewRecordStore(db)
	attachmentStore := store.NewAttachmentStore(db)
	settingStore := store.NewSettingStore(db)

	// Field factory with the attachment resolver wired in so image
	// fields can run their referential checks.
	factory := fields.NewFactory(fields.Deps{Attachments: attachmentStore})

	// Content-type registry over the config store, with the Valkey row
	// cache and field groups as collaborators.
	typeCache := cache.NewTypeCache(valkeyClient, cfg.TypeCacheTTL)
	reg := registry.New(typeStore, factory,
		registry.WithGroupStore(groupStore),
		registry.WithRowCache(typeCache),
	)

	// Structured-data projector and the document cache in front of it.
	projector := schema.NewProjector(recordStore, settingStore)
	docCache := cache.NewSchemaCache(valkeyClient, cfg.SchemaCacheTTL)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(reg, groupStore, recordStore, docCache)
	publicHandlers := handlers.NewPublic(reg, recordStore, projector, docCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(adminHandlers, publicHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
