package source

import "strings"

// Locale carries the raw locale suffix of a file name, leading dots included
// (".en-US"). It is never normalised or validated beyond the path grammar.
type Locale struct {
	raw string
}

// NewLocale wraps raw verbatim.
func NewLocale(raw string) Locale {
	return Locale{raw: raw}
}

// Raw returns the locale exactly as it appeared in the path.
func (l Locale) Raw() string {
	return l.raw
}

// Segments splits the raw tag on dots, dropping empty parts. The stored value
// is unaffected.
func (l Locale) Segments() []string {
	parts := strings.Split(l.raw, ".")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (l Locale) String() string {
	return l.raw
}

// MarshalText renders the raw tag.
func (l Locale) MarshalText() ([]byte, error) {
	return []byte(l.raw), nil
}
