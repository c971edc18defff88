package source

import (
	"encoding/json"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into a descriptor's path.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Descriptor is the classification of one source path. It owns the path
// string; directory and name are spans into it. The zero value is not a valid
// descriptor; use Parse.
type Descriptor struct {
	kind      Kind
	path      string
	directory *Span
	name      Span
	locale    *Locale
	format    Format
}

// Parse classifies raw against the source tree grammar. The whole string must
// match; on any failure no descriptor is returned.
func Parse(raw string) (Descriptor, error) {
	m, ok := matchPath(raw)
	if !ok {
		return Descriptor{}, &PathError{Code: CodePathUnrecognized, Path: raw}
	}

	rootSpan, _ := m.span(groupRoot)
	kind, err := ParseKind(raw[rootSpan.Start:rootSpan.End])
	if err != nil {
		return Descriptor{}, err
	}

	extSpan, _ := m.span(groupExtension)
	format, err := ParseFormat(raw[extSpan.Start:extSpan.End])
	if err != nil {
		return Descriptor{}, err
	}

	desc := Descriptor{
		kind:   kind,
		path:   raw,
		format: format,
	}
	desc.name, _ = m.span(groupName)
	if span, ok := m.span(groupDirectory); ok {
		desc.directory = &span
	}
	if span, ok := m.span(groupLocale); ok {
		locale := NewLocale(raw[span.Start:span.End])
		desc.locale = &locale
	}
	return desc, nil
}

// ParseLocation classifies a filesystem location. Locations that are not
// valid UTF-8 fail with ErrInvalidPath.
func ParseLocation(location string) (Descriptor, error) {
	if !utf8.ValidString(location) {
		return Descriptor{}, &PathError{Code: CodeInvalidPath, Path: location}
	}
	return Parse(location)
}

// Kind returns the content kind selected by the path root.
func (d Descriptor) Kind() Kind {
	return d.kind
}

// Path returns the full original path.
func (d Descriptor) Path() string {
	return d.path
}

// Directory returns the directory segment(s) between the kind root and the
// file name, including the leading separator ("/blog/2024"). ok is false when
// the file sits directly under the root.
func (d Descriptor) Directory() (dir string, ok bool) {
	if d.directory == nil {
		return "", false
	}
	return d.path[d.directory.Start:d.directory.End], true
}

// DirectorySpan returns the byte range of Directory within Path.
func (d Descriptor) DirectorySpan() (Span, bool) {
	if d.directory == nil {
		return Span{}, false
	}
	return *d.directory, true
}

// Name returns the base name of the file, without locale or extension.
func (d Descriptor) Name() string {
	return d.path[d.name.Start:d.name.End]
}

// NameSpan returns the byte range of Name within Path.
func (d Descriptor) NameSpan() Span {
	return d.name
}

// Locale returns the locale tag embedded in the file name, if any.
func (d Descriptor) Locale() (Locale, bool) {
	if d.locale == nil {
		return Locale{}, false
	}
	return *d.locale, true
}

// Format returns the format selected by the extension.
func (d Descriptor) Format() Format {
	return d.format
}

// Valid reports whether d was produced by Parse.
func (d Descriptor) Valid() bool {
	return d.kind.Valid() && d.format.Valid()
}

func (d Descriptor) String() string {
	return d.path
}

type descriptorJSON struct {
	Kind      Kind   `json:"kind"`
	Path      string `json:"path"`
	Directory string `json:"directory,omitempty"`
	Name      string `json:"name"`
	Locale    string `json:"locale,omitempty"`
	Format    Format `json:"format"`
}

// MarshalJSON renders the descriptor with its substrings resolved.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	out := descriptorJSON{
		Kind:   d.kind,
		Path:   d.path,
		Name:   d.Name(),
		Format: d.format,
	}
	if dir, ok := d.Directory(); ok {
		out.Directory = dir
	}
	if locale, ok := d.Locale(); ok {
		out.Locale = locale.Raw()
	}
	return json.Marshal(out)
}
