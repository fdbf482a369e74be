package registry

import (
	"encoding/json"
	"fmt"

	"github.com/elliotchance/phpserialize"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

// decodeConfig turns a persisted config blob into a definition. Rows
// written by this system are JSON; rows imported from the legacy system
// may still be PHP-serialized. JSON is tried first, the legacy codec
// second, and a blob neither understands — or one that decodes to
// something other than an object — is a DecodeError for the caller to
// treat as absent.
func decodeConfig(key string, raw []byte) (*models.ContentTypeDefinition, error) {
	if len(raw) == 0 {
		return nil, &DecodeError{Key: key, Err: fmt.Errorf("empty config")}
	}

	var probe any
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, ok := probe.(map[string]any); !ok {
			return nil, &DecodeError{Key: key, Err: fmt.Errorf("config is not an object")}
		}
		var def models.ContentTypeDefinition
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, &DecodeError{Key: key, Err: err}
		}
		return &def, nil
	}

	// Legacy fallback: PHP-serialized associative array. Re-encode the
	// decoded map as JSON and decode that into the definition so both
	// paths share one field mapping.
	legacy, err := phpserialize.UnmarshalAssociativeArray(raw)
	if err != nil {
		return nil, &DecodeError{Key: key, Err: fmt.Errorf("neither JSON nor legacy serialization: %w", err)}
	}
	bridged, err := json.Marshal(stringifyKeys(legacy))
	if err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	var def models.ContentTypeDefinition
	if err := json.Unmarshal(bridged, &def); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	return &def, nil
}

// stringifyKeys recursively converts the map[any]any shapes produced by
// the legacy codec into JSON-encodable map[string]any.
func stringifyKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = stringifyKeys(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = stringifyKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = stringifyKeys(val)
		}
		return out
	default:
		return v
	}
}
