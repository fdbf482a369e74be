// rowcodec.go is the inner codec of the repeater's two-layer
// serialization: the outer layer is the flat record_values store, the
// inner layer is a JSON-encoded row array kept inside a single value
// slot. This double encoding is the wire format and must round-trip
// byte-for-byte stable.
package fields

import (
	"encoding/json"
	"fmt"
)

// Row is one repeater row: sub-field id -> scalar cell value.
type Row map[string]string

// DecodeRows normalizes a raw repeater value into its row list. It
// accepts the storage form (a JSON-encoded string), an already-decoded
// row list, or the loosely-typed shape produced by a JSON request body.
// A nil or empty input decodes to no rows.
func DecodeRows(raw any) ([]Row, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case []Row:
		return t, nil
	case string:
		if t == "" {
			return nil, nil
		}
		return decodeRowsJSON([]byte(t))
	case []byte:
		if len(t) == 0 {
			return nil, nil
		}
		return decodeRowsJSON(t)
	case []map[string]string:
		rows := make([]Row, len(t))
		for i, m := range t {
			rows[i] = Row(m)
		}
		return rows, nil
	case []map[string]any:
		rows := make([]Row, len(t))
		for i, m := range t {
			rows[i] = rowFromAny(m)
		}
		return rows, nil
	case []any:
		rows := make([]Row, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("decode rows: row is %T, not an object", e)
			}
			rows = append(rows, rowFromAny(m))
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("decode rows: unsupported value %T", raw)
	}
}

func decodeRowsJSON(data []byte) ([]Row, error) {
	var loose []map[string]any
	if err := json.Unmarshal(data, &loose); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	rows := make([]Row, len(loose))
	for i, m := range loose {
		rows[i] = rowFromAny(m)
	}
	return rows, nil
}

func rowFromAny(m map[string]any) Row {
	row := make(Row, len(m))
	for k, v := range m {
		row[k] = valueString(v)
	}
	return row
}

// EncodeRows serializes rows into the canonical storage string: a JSON
// array with object keys in sorted order (encoding/json's map order),
// so equal row lists always encode identically.
func EncodeRows(rows []Row) (string, error) {
	if len(rows) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}
	return string(encoded), nil
}
