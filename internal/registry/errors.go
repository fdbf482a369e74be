package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for the registry's failure taxonomy. Callers branch
// with errors.Is / errors.As.
var (
	// ErrNotFound means no content type exists under the requested key,
	// including the case of a persisted row whose config is corrupt
	// beyond decoding (treated as absent, never as a crash).
	ErrNotFound = errors.New("content type not found")

	// ErrReserved means the key belongs to the fixed native set and can
	// be neither saved over nor deleted.
	ErrReserved = errors.New("content type key is reserved")
)

// ValidationError reports why a definition was rejected before any
// write was attempted.
type ValidationError struct {
	Field  string // offending field, e.g. "post_type_key", "labels"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid definition: %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure reported by the persistence collaborator.
// These always propagate to the caller, never get swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DecodeError reports an undecodable persisted config. Single-item
// reads convert it to ErrNotFound; listings skip the row.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode config for %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
