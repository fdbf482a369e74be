package fields

import (
	"fmt"
	"log/slog"
	"sync"
)

// Deps bundles the collaborators a field constructor may need. The
// factory injects itself so composite kinds (repeater) can materialize
// their sub-fields through the same registration table.
type Deps struct {
	Attachments AttachmentResolver

	factory *Factory
}

// Constructor builds a Field from a descriptor. Returning an error
// marks the descriptor as failed-to-materialize; batch creation skips
// it rather than aborting.
type Constructor func(d Descriptor, deps Deps) (Field, error)

// Factory maps declarative field kinds to constructors. The table is
// open for extension: plugins register new kinds at startup with
// Register. An unregistered kind never refuses to materialize — it
// degrades to the text kind, favoring admin usability over strictness.
type Factory struct {
	mu    sync.RWMutex
	kinds map[Kind]Constructor
	deps  Deps
}

// NewFactory creates a factory with every built-in kind registered.
func NewFactory(deps Deps) *Factory {
	f := &Factory{kinds: make(map[Kind]Constructor)}
	deps.factory = f
	f.deps = deps

	f.Register(KindText, newText)
	f.Register(KindTextarea, newTextarea)
	f.Register(KindWysiwyg, newWysiwyg)
	f.Register(KindNumber, newNumber)
	f.Register(KindSelect, newSelect)
	f.Register(KindRadio, newRadio)
	f.Register(KindCheckbox, newCheckbox)
	f.Register(KindDate, newDate)
	f.Register(KindImage, newImage)
	f.Register(KindRepeater, newRepeater)
	return f
}

// Register adds or replaces the constructor for a kind.
func (f *Factory) Register(kind Kind, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds[kind] = c
}

// Kinds returns the registered kind names.
func (f *Factory) Kinds() []Kind {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Kind, 0, len(f.kinds))
	for k := range f.kinds {
		out = append(out, k)
	}
	return out
}

// Create materializes a descriptor into a live field. A missing or
// unknown type degrades to text with a warning; a descriptor without an
// id, or a constructor failure (such as a nested repeater), is an error.
func (f *Factory) Create(d Descriptor) (Field, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("create field: descriptor has no id")
	}

	kind := d.Type
	if kind == "" {
		kind = KindText
	}

	f.mu.RLock()
	ctor, ok := f.kinds[kind]
	f.mu.RUnlock()

	if !ok {
		slog.Warn("unknown field type, falling back to text", "field", d.ID, "type", string(kind))
		f.mu.RLock()
		ctor = f.kinds[KindText]
		f.mu.RUnlock()
		d.Type = KindText
	}

	field, err := ctor(d, f.deps)
	if err != nil {
		return nil, fmt.Errorf("create field %q: %w", d.ID, err)
	}
	return field, nil
}

// CreateMany materializes a descriptor list, preserving order.
// Descriptors that fail to materialize are skipped with a warning, never
// fatal to the batch.
func (f *Factory) CreateMany(descs []Descriptor) []Field {
	out := make([]Field, 0, len(descs))
	for _, d := range descs {
		field, err := f.Create(d)
		if err != nil {
			slog.Warn("field descriptor skipped", "field", d.ID, "error", err)
			continue
		}
		out = append(out, field)
	}
	return out
}
