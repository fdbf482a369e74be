// Package registry persists, loads, caches and materializes content-type
// definitions. It is the single owner of the materialized content-type
// cache and the component with the most failure-handling surface:
// corrupt persisted rows degrade to "absent" or "skipped", never to a
// crashed listing.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"github.com/davidum2/seo-content-structure-sub000/internal/fields"
	"github.com/davidum2/seo-content-structure-sub000/internal/models"
	"github.com/davidum2/seo-content-structure-sub000/internal/slug"
)

// keyPattern bounds content-type keys: lowercase alphanumerics, dashes
// and underscores, 1-20 characters.
var keyPattern = regexp.MustCompile(`^[a-z0-9_-]{1,20}$`)

// ConfigStore is the persistence collaborator for content-type rows.
// Absent rows are (nil, nil), storage failures are errors.
type ConfigStore interface {
	GetRow(ctx context.Context, key string) (*models.ContentTypeRow, error)
	ListRows(ctx context.Context) ([]models.ContentTypeRow, error)
	UpsertRow(ctx context.Context, key string, config []byte, active bool) error
	SetActive(ctx context.Context, key string, active bool) error
	DeleteRow(ctx context.Context, key string) error
}

// GroupStore lists the active field groups whose locations decide which
// fields each content type carries.
type GroupStore interface {
	ListActive(ctx context.Context) ([]models.FieldGroup, error)
}

// RowCache is the short-lived cache collaborator for persisted rows.
// All methods degrade silently; caching is never load-bearing.
type RowCache interface {
	Get(ctx context.Context, key string) (*models.ContentTypeRow, bool)
	Set(ctx context.Context, key string, row *models.ContentTypeRow)
	Invalidate(ctx context.Context, key string)
}

// RouteRefresher is notified after a successful save or delete so the
// host can rebuild any routing state derived from the type set.
type RouteRefresher interface {
	RefreshRoutes(ctx context.Context)
}

// ContentType is a materialized content-type: the decoded, defaulted
// definition plus the live fields contributed by its active field
// groups. Instances are owned by the registry's cache; use
// EditFields for per-request mutable field sets.
type ContentType struct {
	Key              string
	Definition       models.ContentTypeDefinition
	Active           bool
	FieldDescriptors []fields.Descriptor
	Fields           []fields.Field
}

// HasFields reports whether any field group contributes fields to this
// type. Lets the admin UI tell "exists but empty" apart from missing.
func (ct *ContentType) HasFields() bool {
	return len(ct.FieldDescriptors) > 0
}

// Option configures a Registry.
type Option func(*Registry)

// WithGroupStore wires the field-group collaborator.
func WithGroupStore(gs GroupStore) Option {
	return func(r *Registry) { r.groups = gs }
}

// WithRowCache wires the short-lived row cache collaborator.
func WithRowCache(c RowCache) Option {
	return func(r *Registry) { r.rowCache = c }
}

// WithRouteRefresher wires the routing-refresh side effect.
func WithRouteRefresher(rr RouteRefresher) Option {
	return func(r *Registry) { r.refresher = rr }
}

// WithReservedKeys adds keys to the native reserved set.
func WithReservedKeys(keys ...string) Option {
	return func(r *Registry) {
		for _, k := range keys {
			r.reserved[k] = struct{}{}
		}
	}
}

// Registry materializes content types from persisted configuration.
// It owns the process-wide materialized cache; no other component may
// cache ContentType objects independently.
type Registry struct {
	store    ConfigStore
	groups   GroupStore
	rowCache RowCache
	factory  *fields.Factory
	refresher RouteRefresher
	reserved map[string]struct{}

	mu    sync.RWMutex
	types map[string]*ContentType
}

// New creates a Registry over the given config store and field factory.
func New(store ConfigStore, factory *fields.Factory, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		factory:  factory,
		reserved: make(map[string]struct{}, len(defaultReserved)),
		types:    make(map[string]*ContentType),
	}
	for _, k := range defaultReserved {
		r.reserved[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsReserved reports whether key belongs to the native set.
func (r *Registry) IsReserved(key string) bool {
	_, ok := r.reserved[key]
	return ok
}

// Save validates and persists a definition, upserting by key. The
// definition is either fully saved with defaults applied or not saved
// at all: validation completes before any write is attempted. On
// success the caches are invalidated and the routing collaborator is
// signalled, so a subsequent Get observes the new value.
func (r *Registry) Save(ctx context.Context, def models.ContentTypeDefinition) (string, error) {
	if err := r.validate(&def); err != nil {
		return "", err
	}
	applyDefaults(&def)

	config, err := json.Marshal(def)
	if err != nil {
		return "", &ValidationError{Field: "definition", Reason: err.Error()}
	}

	// Re-saving keeps the row's activation state; a new row starts active.
	active := true
	if existing, gerr := r.store.GetRow(ctx, def.Key); gerr != nil {
		return "", &StorageError{Op: "read", Err: gerr}
	} else if existing != nil {
		active = existing.Active
	}

	if err := r.store.UpsertRow(ctx, def.Key, config, active); err != nil {
		return "", &StorageError{Op: "write", Err: err}
	}

	r.invalidate(ctx, def.Key)
	r.refreshRoutes(ctx)
	slog.Info("content type saved", "key", def.Key, "active", active)
	return def.Key, nil
}

// Get returns the materialized content type for key. The in-memory
// cache is checked first, then the row cache, then storage. A row whose
// config cannot be decoded is treated as absent.
func (r *Registry) Get(ctx context.Context, key string) (*ContentType, error) {
	r.mu.RLock()
	ct, ok := r.types[key]
	r.mu.RUnlock()
	if ok {
		return ct, nil
	}

	row, err := r.loadRow(ctx, key)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}

	ct, err = r.materialize(ctx, row)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			slog.Warn("content type config undecodable, treating as absent",
				"key", key, "error", derr.Err)
			return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
		}
		return nil, err
	}

	r.mu.Lock()
	r.types[key] = ct
	r.mu.Unlock()
	return ct, nil
}

// GetAllActive returns every materialized content type whose persisted
// active flag is set. Corrupt rows are skipped with a warning; one bad
// row never aborts the listing.
func (r *Registry) GetAllActive(ctx context.Context) ([]*ContentType, error) {
	rows, err := r.store.ListRows(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	out := make([]*ContentType, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if !row.Active {
			continue
		}
		ct, merr := r.materialize(ctx, row)
		if merr != nil {
			slog.Warn("skipping malformed content type row", "key", row.Key, "error", merr)
			continue
		}
		out = append(out, ct)
	}
	return out, nil
}

// SetActive flips a definition between Persisted(active) and
// Persisted(inactive). Inactive types stay editable but drop out of
// GetAllActive and live registration.
func (r *Registry) SetActive(ctx context.Context, key string, active bool) error {
	row, err := r.loadRow(ctx, key)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	if err := r.store.SetActive(ctx, key, active); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	r.invalidate(ctx, key)
	r.refreshRoutes(ctx)
	slog.Info("content type activation changed", "key", key, "active", active)
	return nil
}

// Delete removes a definition. Reserved keys are refused; deleting also
// invalidates every cache layer and signals the routing collaborator.
func (r *Registry) Delete(ctx context.Context, key string) error {
	if r.IsReserved(key) {
		return fmt.Errorf("%q: %w", key, ErrReserved)
	}
	row, err := r.loadRow(ctx, key)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	if err := r.store.DeleteRow(ctx, key); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	r.invalidate(ctx, key)
	r.refreshRoutes(ctx)
	slog.Info("content type deleted", "key", key)
	return nil
}

// EditFields materializes a fresh, mutable field set for the content
// type. The cached prototypes are shared across requests and must never
// carry per-record values; callers editing a record work on this copy.
func (r *Registry) EditFields(ct *ContentType) []fields.Field {
	return r.factory.CreateMany(ct.FieldDescriptors)
}

// Invalidate drops one key from the materialized and row caches.
func (r *Registry) Invalidate(ctx context.Context, key string) {
	r.invalidate(ctx, key)
}

// InvalidateAll clears the materialized cache entirely.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]*ContentType)
	slog.Debug("content type cache fully cleared")
}

// loadRow reads a row through the row cache, falling back to storage.
func (r *Registry) loadRow(ctx context.Context, key string) (*models.ContentTypeRow, error) {
	if r.rowCache != nil {
		if row, ok := r.rowCache.Get(ctx, key); ok {
			return row, nil
		}
	}
	row, err := r.store.GetRow(ctx, key)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if row != nil && r.rowCache != nil {
		r.rowCache.Set(ctx, key, row)
	}
	return row, nil
}

// materialize decodes, defaults and builds the runtime object for a
// persisted row, including the fields contributed by active groups.
func (r *Registry) materialize(ctx context.Context, row *models.ContentTypeRow) (*ContentType, error) {
	def, err := decodeConfig(row.Key, row.Config)
	if err != nil {
		return nil, err
	}
	if def.Key == "" {
		def.Key = row.Key
	}
	applyDefaults(def)

	descs, err := r.groupDescriptors(ctx, row.Key)
	if err != nil {
		return nil, err
	}

	return &ContentType{
		Key:              row.Key,
		Definition:       *def,
		Active:           row.Active,
		FieldDescriptors: descs,
		Fields:           r.factory.CreateMany(descs),
	}, nil
}

// groupDescriptors collects the field descriptors of every active group
// targeting the type, ordered by group position then declaration order.
func (r *Registry) groupDescriptors(ctx context.Context, key string) ([]fields.Descriptor, error) {
	if r.groups == nil {
		return nil, nil
	}
	groups, err := r.groups.ListActive(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list groups", Err: err}
	}
	matched := groups[:0:0]
	for _, g := range groups {
		if g.AppliesTo(key) {
			matched = append(matched, g)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Position < matched[j].Position
	})
	var descs []fields.Descriptor
	for _, g := range matched {
		descs = append(descs, g.Fields...)
	}
	return descs, nil
}

// validate enforces the definition's invariants. It runs entirely
// before any persistence write.
func (r *Registry) validate(def *models.ContentTypeDefinition) error {
	if !keyPattern.MatchString(def.Key) {
		return &ValidationError{
			Field:  "post_type_key",
			Reason: "must be 1-20 characters of a-z, 0-9, '-' or '_'",
		}
	}
	if r.IsReserved(def.Key) {
		return fmt.Errorf("%q: %w", def.Key, ErrReserved)
	}
	if def.Args.Labels.SingularName == "" || def.Args.Labels.Name == "" {
		return &ValidationError{
			Field:  "labels",
			Reason: "singular_name and name are required",
		}
	}
	return nil
}

// invalidate drops a key from both cache layers. Must happen after the
// corresponding successful write so later reads observe the new value.
func (r *Registry) invalidate(ctx context.Context, key string) {
	r.mu.Lock()
	delete(r.types, key)
	r.mu.Unlock()
	if r.rowCache != nil {
		r.rowCache.Invalidate(ctx, key)
	}
}

func (r *Registry) refreshRoutes(ctx context.Context) {
	if r.refresher != nil {
		r.refresher.RefreshRoutes(ctx)
	}
}

// applyDefaults fills the unset parts of a definition: visibility
// flags, rewrite slug, supported features and derived labels. Used
// identically on save and on load so legacy rows get the same shape.
func applyDefaults(def *models.ContentTypeDefinition) {
	args := &def.Args
	if args.Public == nil {
		args.Public = boolPtr(true)
	}
	if args.PubliclyQueryable == nil {
		args.PubliclyQueryable = boolPtr(*args.Public)
	}
	if args.ShowInAdminBar == nil {
		args.ShowInAdminBar = boolPtr(true)
	}
	if args.RewriteSlug == "" {
		if s := slug.Generate(args.Labels.Name); s != "" {
			args.RewriteSlug = s
		} else {
			args.RewriteSlug = def.Key
		}
	}
	if len(args.Supports) == 0 {
		args.Supports = []string{"title", "editor"}
	}
	labels := &args.Labels
	if labels.AddNew == "" {
		labels.AddNew = "Add " + labels.SingularName
	}
	if labels.EditItem == "" {
		labels.EditItem = "Edit " + labels.SingularName
	}
	if labels.ViewItem == "" {
		labels.ViewItem = "View " + labels.SingularName
	}
	if labels.SearchItems == "" {
		labels.SearchItems = "Search " + labels.Name
	}
	if labels.NotFound == "" {
		labels.NotFound = "No " + labels.Name + " found"
	}
	if def.SchemaType == "" {
		def.SchemaType = "Thing"
	}
}

func boolPtr(b bool) *bool { return &b }
