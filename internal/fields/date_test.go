package fields

import (
	"context"
	"testing"
)

func TestDateFieldSanitize(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "starts", Type: KindDate})

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "canonical untouched", raw: "2026-03-05", want: "2026-03-05"},
		{name: "rfc3339 reduced to date", raw: "2026-03-05T10:00:00Z", want: "2026-03-05"},
		{name: "long form", raw: "March 5, 2026", want: "2026-03-05"},
		{name: "unparsable degrades to empty", raw: "someday", want: ""},
		{name: "empty", raw: "", want: ""},
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

func TestDateFieldValidate(t *testing.T) {
	ctx := context.Background()
	f := mustCreate(t, Descriptor{
		ID:      "starts",
		Type:    KindDate,
		Label:   "Start date",
		MinDate: "2026-01-01",
		MaxDate: "2026-12-31",
	})

	tests := []struct {
		name  string
		value any
		kind  ErrorKind
	}{
		{name: "in range", value: "2026-06-15", kind: ""},
		{name: "at min", value: "2026-01-01", kind: ""},
		{name: "at max", value: "2026-12-31", kind: ""},
		{name: "before min", value: "2025-12-31", kind: ErrOutOfRange},
		{name: "after max", value: "2027-01-01", kind: ErrOutOfRange},
		{name: "not a date", value: "soon", kind: ErrBadFormat},
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

func TestDateFieldSchemaValue(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "starts", Type: KindDate})

	if got := f.SchemaValue("2026-03-05"); got != "2026-03-05" {
		t.Errorf("SchemaValue = %v, want canonical date", got)
	}
	if got := f.SchemaValue(""); got != nil {
		t.Errorf("SchemaValue(empty) = %v, want nil", got)
	}
	if got := f.SchemaValue("not a date"); got != nil {
		t.Errorf("SchemaValue(junk) = %v, want nil", got)
	}
}
