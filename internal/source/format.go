package source

import "strings"

// Format identifies how a file's content is encoded, derived from its
// extension.
type Format uint8

const (
	formatUnknown Format = iota
	FormatHTML
	FormatMarkdown
	FormatYAML
	FormatJSON
	FormatScript
	FormatShell
)

var formatExtensions = map[Format][]string{
	FormatHTML:     {"html", "htm", "xhtml", "xml"},
	FormatMarkdown: {"md", "markdown", "mdown", "mkdn", "mdwn", "mdtxt", "mdtext", "text", "rmd"},
	FormatYAML:     {"yaml", "yml"},
	FormatJSON:     {"json"},
	FormatScript:   {"rhai"},
	FormatShell:    {"sh"},
}

var extensionFormats = func() map[string]Format {
	out := make(map[string]Format)
	for format, exts := range formatExtensions {
		for _, ext := range exts {
			out[ext] = format
		}
	}
	return out
}()

// ParseFormat resolves a file extension (without the leading dot) to a Format.
// Lookup is case-insensitive and never falls back to a default.
func ParseFormat(ext string) (Format, error) {
	if format, ok := extensionFormats[strings.ToLower(ext)]; ok {
		return format, nil
	}
	return formatUnknown, &ClassificationError{Code: CodeFormatUnrecognized, Token: ext}
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	return f >= FormatHTML && f <= FormatShell
}

// Extensions returns the extension aliases accepted for the format.
func (f Format) Extensions() []string {
	return append([]string(nil), formatExtensions[f]...)
}

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatScript:
		return "script"
	case FormatShell:
		return "shell"
	default:
		return "unknown"
	}
}

// MarshalText renders the canonical format name.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
