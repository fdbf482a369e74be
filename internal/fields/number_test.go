package fields

import (
	"context"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestNumberFieldSanitize(t *testing.T) {
	f := mustCreate(t, Descriptor{
		ID:   "price",
		Type: KindNumber,
		Min:  floatPtr(0),
		Max:  floatPtr(1000),
	})

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "plain number", raw: "149.90", want: "149.9"},
		{name: "integer", raw: "42", want: "42"},
		{name: "float value", raw: 149.9, want: "149.9"},
		{name: "clamped to min", raw: "-5", want: "0"},
		{name: "clamped to max", raw: "5000", want: "1000"},
		{name: "non numeric degrades to empty", raw: "abc", want: ""},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace trimmed", raw: "  7.5  ", want: "7.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Sanitize(tt.raw)
			if got != tt.want {
				t.Errorf("Sanitize(%v) = %q, want %q", tt.raw, got, tt.want)
			}
			if again := f.Sanitize(got); again != got {
				t.Errorf("Sanitize not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestNumberFieldValidate(t *testing.T) {
	ctx := context.Background()
	f := mustCreate(t, Descriptor{
		ID:    "price",
		Type:  KindNumber,
		Label: "Price",
		Min:   floatPtr(10),
		Max:   floatPtr(100),
	})

	tests := []struct {
		name  string
		value any
		kind  ErrorKind // "" means expect nil error
	}{
		{name: "in range", value: "50", kind: ""},
		{name: "at min", value: "10", kind: ""},
		{name: "at max", value: "100", kind: ""},
		{name: "below min", value: "9.99", kind: ErrOutOfRange},
		{name: "above max", value: "100.01", kind: ErrOutOfRange},
		{name: "not a number", value: "cheap", kind: ErrBadFormat},
		{name: "empty optional", value: "", kind: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.SetValue(tt.value)
			err := f.Validate(ctx)
			if tt.kind == "" {
				if err != nil {
					t.Errorf("want nil, got %v", err)
				}
				return
			}
			if err == nil || err.Kind != tt.kind {
				t.Errorf("want %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestNumberFieldSchemaValue(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "price", Type: KindNumber})

	if got := f.SchemaValue("149.9"); got != 149.9 {
		t.Errorf("SchemaValue(149.9) = %v (%T), want float64", got, got)
	}
	if got := f.SchemaValue(""); got != nil {
		t.Errorf("SchemaValue(empty) = %v, want nil", got)
	}
	if got := f.SchemaValue("junk"); got != nil {
		t.Errorf("SchemaValue(junk) = %v, want nil", got)
	}
}
