package interfaces

import "time"

// Metadata is the header block extracted from a source file. Well known keys
// are lifted into typed fields; every key, known or not, is kept in Raw.
type Metadata struct {
	Title   string         `yaml:"title" json:"title,omitempty"`
	Slug    string         `yaml:"slug" json:"slug,omitempty"`
	Layout  string         `yaml:"layout" json:"layout,omitempty"`
	Summary string         `yaml:"summary" json:"summary,omitempty"`
	Tags    []string       `yaml:"tags" json:"tags,omitempty"`
	Date    time.Time      `yaml:"date" json:"date,omitzero"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom,omitempty"`
	Raw     map[string]any `yaml:"-" json:"-"`
}
