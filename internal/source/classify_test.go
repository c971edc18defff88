package source

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"includes": KindInclude,
		"Layouts":  KindLayout,
		"PAGES":    KindPage,
	}
	for token, want := range cases {
		got, err := ParseKind(token)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", token, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q) = %s, want %s", token, got, want)
		}
	}
}

func TestParseKindRejectsPartialMatches(t *testing.T) {
	for _, token := range []string{"", "page", "pagesx", "include", "layout", "posts"} {
		_, err := ParseKind(token)
		if !errors.Is(err, ErrKindUnrecognized) {
			t.Fatalf("ParseKind(%q): expected ErrKindUnrecognized, got %v", token, err)
		}
		var classification *ClassificationError
		if !errors.As(err, &classification) || classification.Token != token {
			t.Fatalf("ParseKind(%q): expected token to be carried, got %v", token, err)
		}
	}
}

func TestParseFormatAliases(t *testing.T) {
	cases := map[string]Format{
		"html": FormatHTML, "HTM": FormatHTML, "xhtml": FormatHTML, "xml": FormatHTML,
		"md": FormatMarkdown, "markdown": FormatMarkdown, "mdown": FormatMarkdown, "mkdn": FormatMarkdown,
		"mdwn": FormatMarkdown, "mdtxt": FormatMarkdown, "mdtext": FormatMarkdown, "text": FormatMarkdown, "Rmd": FormatMarkdown,
		"yaml": FormatYAML, "YML": FormatYAML,
		"json": FormatJSON,
		"rhai": FormatScript,
		"sh":   FormatShell,
	}
	for ext, want := range cases {
		got, err := ParseFormat(ext)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", ext, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %s, want %s", ext, got, want)
		}
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	for _, ext := range []string{"", "xyz", "mdx", "htmlx", "bash", "js"} {
		_, err := ParseFormat(ext)
		if !errors.Is(err, ErrFormatUnrecognized) {
			t.Fatalf("ParseFormat(%q): expected ErrFormatUnrecognized, got %v", ext, err)
		}
		if CodeOf(err) != CodeFormatUnrecognized {
			t.Fatalf("ParseFormat(%q): unexpected code %q", ext, CodeOf(err))
		}
	}
}

func TestFormatExtensionsRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatHTML, FormatMarkdown, FormatYAML, FormatJSON, FormatScript, FormatShell} {
		exts := format.Extensions()
		if len(exts) == 0 {
			t.Fatalf("%s: expected extensions", format)
		}
		for _, ext := range exts {
			got, err := ParseFormat(ext)
			if err != nil || got != format {
				t.Fatalf("%s: extension %q resolved to %s (%v)", format, ext, got, err)
			}
		}
	}
}

func TestKindRootRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		got, err := ParseKind(kind.Root())
		if err != nil || got != kind {
			t.Fatalf("%s: root %q resolved to %s (%v)", kind, kind.Root(), got, err)
		}
	}
	if kindUnknown.Valid() || formatUnknown.Valid() {
		t.Fatal("zero values must not be valid")
	}
}

func TestLocaleKeepsRawValue(t *testing.T) {
	locale := NewLocale(".en-US")
	if locale.Raw() != ".en-US" {
		t.Fatalf("expected raw locale, got %q", locale.Raw())
	}
	segments := NewLocale(".de.formal").Segments()
	if len(segments) != 2 || segments[0] != "de" || segments[1] != "formal" {
		t.Fatalf("unexpected segments %v", segments)
	}
}
