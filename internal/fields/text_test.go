package fields

import (
	"context"
	"strings"
	"testing"
)

func mustCreate(t *testing.T, d Descriptor) Field {
	t.Helper()
	f, err := NewFactory(Deps{}).Create(d)
	if err != nil {
		t.Fatalf("create field %q: %v", d.ID, err)
	}
	return f
}

func TestTextFieldSanitize(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "headline", Type: KindText})

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "plain", raw: "A headline", want: "A headline"},
		{name: "markup stripped", raw: "<h1>A headline</h1>", want: "A headline"},
		{name: "multiline collapsed", raw: "line one\nline two", want: "line one line two"},
		{name: "nil", raw: nil, want: ""},
		{name: "number coerced", raw: 42, want: "42"},
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

func TestTextFieldValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("required empty fails", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "headline", Type: KindText, Required: true})
		f.SetValue("")
		err := f.Validate(ctx)
		if err == nil || err.Kind != ErrRequired {
			t.Fatalf("want required error, got %v", err)
		}
	})

	t.Run("optional empty passes", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "headline", Type: KindText})
		f.SetValue("")
		if err := f.Validate(ctx); err != nil {
			t.Fatalf("want no error, got %v", err)
		}
	})

	t.Run("length bounds", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "headline", Type: KindText, MinLength: 3, MaxLength: 5})

		f.SetValue("ab")
		if err := f.Validate(ctx); err == nil || err.Kind != ErrOutOfRange {
			t.Errorf("too short: want out_of_range, got %v", err)
		}

		f.SetValue("abcd")
		if err := f.Validate(ctx); err != nil {
			t.Errorf("in range: want nil, got %v", err)
		}

		f.SetValue("abcdef")
		if err := f.Validate(ctx); err == nil || err.Kind != ErrOutOfRange {
			t.Errorf("too long: want out_of_range, got %v", err)
		}
	})

	t.Run("rune count not byte count", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "headline", Type: KindText, MaxLength: 4})
		f.SetValue("áéíó")
		if err := f.Validate(ctx); err != nil {
			t.Errorf("4 runes within max 4: want nil, got %v", err)
		}
	})
}

func TestTextFieldRenderAdmin(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "headline", Name: "_headline", Type: KindText, Label: "Headline"})
	f.SetValue("Hello")

	out := string(f.RenderAdmin())
	for _, want := range []string{`name="_headline"`, `id="headline"`, `value="Hello"`, "Headline"} {
		if !strings.Contains(out, want) {
			t.Errorf("admin markup missing %q:\n%s", want, out)
		}
	}
}

func TestTextareaFieldSanitize(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "summary", Type: KindTextarea})

	got := f.Sanitize("<p>one</p>\r\n<p>two</p>")
	if got != "one\ntwo" {
		t.Errorf("Sanitize = %q, want %q", got, "one\ntwo")
	}
}

func TestWysiwygField(t *testing.T) {
	f := mustCreate(t, Descriptor{ID: "body", Type: KindWysiwyg})

	t.Run("sanitize drops scripts keeps markdown", func(t *testing.T) {
		got := f.Sanitize("# Title\n\nbody <script>bad()</script>text")
		if strings.Contains(got, "<script>") {
			t.Errorf("script survived sanitize: %q", got)
		}
		if !strings.Contains(got, "# Title") {
			t.Errorf("markdown source lost: %q", got)
		}
	})

	t.Run("frontend renders markdown as html", func(t *testing.T) {
		f.SetValue("**bold** text")
		out := string(f.RenderFrontend())
		if !strings.Contains(out, "<strong>bold</strong>") {
			t.Errorf("markdown not rendered: %q", out)
		}
	})

	t.Run("empty renders nothing", func(t *testing.T) {
		f.SetValue("")
		if out := f.RenderFrontend(); out != "" {
			t.Errorf("empty value rendered %q", out)
		}
	})
}

func TestBaseFieldDefaults(t *testing.T) {
	t.Run("default used when unset", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "h", Type: KindText, DefaultValue: "fallback"})
		if got := f.Value(); got != "fallback" {
			t.Errorf("Value() = %v, want default", got)
		}
	})

	t.Run("explicit empty stays empty", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "h", Type: KindText, DefaultValue: "fallback"})
		f.SetValue("")
		if got := f.Value(); got != "" {
			t.Errorf("cleared value resurrected to %v", got)
		}
	})

	t.Run("set value wins", func(t *testing.T) {
		f := mustCreate(t, Descriptor{ID: "h", Type: KindText, DefaultValue: "fallback"})
		f.SetValue("real")
		if got := f.Value(); got != "real" {
			t.Errorf("Value() = %v, want %q", got, "real")
		}
	})
}

func TestBaseFieldStorageKey(t *testing.T) {
	withName := mustCreate(t, Descriptor{ID: "price", Name: "_service_price", Type: KindText})
	if withName.Name() != "_service_price" {
		t.Errorf("Name() = %q, want explicit name", withName.Name())
	}
	withoutName := mustCreate(t, Descriptor{ID: "price", Type: KindText})
	if withoutName.Name() != "price" {
		t.Errorf("Name() = %q, want id fallback", withoutName.Name())
	}
}
