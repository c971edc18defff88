package metadata

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// ErrMalformed reports a header block that is present but cannot be decoded.
var ErrMalformed = errors.New("metadata: malformed header block")

// Extractor implements source.Extractor. Markdown and HTML files may open with
// a front matter block (YAML "---", TOML "+++" or JSON); the remaining formats
// are data or code files and never carry one.
type Extractor struct{}

var _ source.Extractor = Extractor{}

// NewExtractor returns the default extractor.
func NewExtractor() Extractor {
	return Extractor{}
}

// Extract returns the decoded block and the body that follows it. Files
// without a block come back unchanged with nil metadata.
func (Extractor) Extract(format source.Format, content []byte) (*interfaces.Metadata, []byte, error) {
	switch format {
	case source.FormatMarkdown, source.FormatHTML:
		return ParseFrontMatter(content)
	default:
		return nil, content, nil
	}
}

// ParseFrontMatter decodes a leading front matter block from content.
func ParseFrontMatter(content []byte) (*interfaces.Metadata, []byte, error) {
	raw := map[string]any{}
	body, err := frontmatter.MustParse(bytes.NewReader(content), &raw)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return nil, content, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromMap(raw), body, nil
}

// FromMap lifts the well known keys of raw into a Metadata value. Keys that
// are not lifted end up in Custom; Raw always holds a normalised copy of every
// key.
func FromMap(raw map[string]any) *interfaces.Metadata {
	normalized := Normalize(raw)
	meta := &interfaces.Metadata{
		Custom: map[string]any{},
		Raw:    normalized,
	}
	for key, value := range normalized {
		switch key {
		case "title":
			meta.Title = stringValue(value)
		case "slug":
			meta.Slug = stringValue(value)
		case "layout", "template", "summary", "description":
			// resolved below in fixed priority order
		case "tags":
			meta.Tags = stringSlice(value)
		case "date":
			meta.Date = timeValue(value)
		case "draft":
			meta.Draft = boolValue(value)
		default:
			meta.Custom[key] = value
		}
	}
	meta.Layout = firstString(normalized, "layout", "template")
	meta.Summary = firstString(normalized, "summary", "description")
	return meta
}

// firstString returns the first non-empty string among keys, in order.
func firstString(values map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if text := stringValue(value); text != "" {
			return text
		}
	}
	return ""
}
