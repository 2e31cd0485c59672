package i18n

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestNew_LoadsEmbeddedCatalogs(t *testing.T) {
	tr, err := New("en", testLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := tr.T("nav.posts"); got != "Posts" {
		t.Fatalf("nav.posts = %q, want Posts", got)
	}

	tr.SetLocale("ar")
	if got := tr.T("nav.posts"); got != "المنشورات" {
		t.Fatalf("nav.posts (ar) = %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	tr, err := New("en", testLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if diff := cmp.Diff(tr.Keys("en"), tr.Keys("ar")); diff != "" {
		t.Fatalf("catalog keys differ (-en +ar):\n%s", diff)
	}
}

func TestParseCatalog_FlattensTables(t *testing.T) {
	cat, err := ParseCatalog([]byte(`
top = "a"
[notify.saved]
title = "Saved"
count = 3
`))
	if err != nil {
		t.Fatalf("ParseCatalog returned error: %v", err)
	}
	want := Catalog{"top": "a", "notify.saved.title": "Saved", "notify.saved.count": "3"}
	if diff := cmp.Diff(want, cat); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_InterpolatesVariables(t *testing.T) {
	tr := NewWithCatalogs("en", map[language.Tag]Catalog{
		language.English: {"greet": "Hello {{name}}, you have {{ count }} posts and {{missing}}"},
	}, testLogger(&bytes.Buffer{}))

	got := tr.Get("greet", map[string]any{"name": "Ada", "count": 1234})
	want := "Hello Ada, you have 1,234 posts and {{missing}}"
	if got != want {
		t.Fatalf("Get = %q, want %q", got, want)
	}
}

func TestGet_MissingKeyReturnsKeyAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	tr := NewWithCatalogs("en", map[language.Tag]Catalog{language.English: {}}, testLogger(&buf))

	for range 3 {
		if got := tr.T("nope.key"); got != "nope.key" {
			t.Fatalf("T = %q, want key", got)
		}
	}
	if n := strings.Count(buf.String(), "missing translation"); n != 1 {
		t.Fatalf("missing translation logged %d times, want 1:\n%s", n, buf.String())
	}
}

func TestGet_FallsBackToEnglish(t *testing.T) {
	tr := NewWithCatalogs("ar", map[language.Tag]Catalog{
		language.English: {"only.en": "English only", "both": "Both"},
		language.Arabic:  {"both": "كلاهما"},
	}, testLogger(&bytes.Buffer{}))

	if got := tr.T("only.en"); got != "English only" {
		t.Fatalf("fallback = %q, want English only", got)
	}
	if got := tr.T("both"); got != "كلاهما" {
		t.Fatalf("both = %q, want Arabic", got)
	}
}

func TestMatchAndDirection(t *testing.T) {
	tests := []struct {
		in   string
		want string
		dir  Direction
	}{
		{"en", "en", LTR},
		{"en-GB", "en", LTR},
		{"ar", "ar", RTL},
		{"ar-EG", "ar", RTL},
		{"fr", "en", LTR},
		{"", "en", LTR},
	}
	for _, tt := range tests {
		tag := Match(tt.in)
		if tag.String() != tt.want {
			t.Errorf("Match(%q) = %s, want %s", tt.in, tag, tt.want)
		}
		if got := DirectionOf(tag); got != tt.dir {
			t.Errorf("DirectionOf(%s) = %s, want %s", tag, got, tt.dir)
		}
	}
}

func TestSetLocaleAndNext(t *testing.T) {
	tr := NewWithCatalogs("en", map[language.Tag]Catalog{}, testLogger(&bytes.Buffer{}))
	if tr.Next() != "ar" {
		t.Fatalf("Next from en = %q, want ar", tr.Next())
	}
	if got := tr.SetLocale("ar-SA"); got != "ar" {
		t.Fatalf("SetLocale = %q, want ar", got)
	}
	if tr.Direction() != RTL {
		t.Fatalf("Direction = %s, want rtl", tr.Direction())
	}
	if tr.Next() != "en" {
		t.Fatalf("Next from ar = %q, want en", tr.Next())
	}
}

func TestNumber(t *testing.T) {
	tr := NewWithCatalogs("en", map[language.Tag]Catalog{}, testLogger(&bytes.Buffer{}))
	if got := tr.Number(1234567); got != "1,234,567" {
		t.Fatalf("Number = %q, want 1,234,567", got)
	}
}
