package loader

import (
	"context"
	"time"

	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
	"github.com/google/uuid"
)

// Service loads classified source files.
type Service interface {
	Describe(ctx context.Context, paths []string) []Result
	Load(ctx context.Context, path string) (*Entry, error)
	LoadAll(ctx context.Context, paths []string) ([]*Entry, []error)
	LoadDirectory(ctx context.Context, root string) ([]*Entry, []error)
}

// Result is the classification outcome for one path.
type Result struct {
	Path       string
	Descriptor source.Descriptor
	Err        error
}

// OK reports whether the path was recognised.
func (r Result) OK() bool {
	return r.Err == nil
}

// Entry is a loaded file plus the identifiers derived from it.
type Entry struct {
	ID       uuid.UUID
	Slug     string
	Checksum string
	LoadedAt time.Time
	File     *source.File
}

// Descriptor returns the classification of the entry path.
func (e *Entry) Descriptor() source.Descriptor {
	return e.File.Descriptor()
}

// Path returns the entry path as given by the caller.
func (e *Entry) Path() string {
	return e.File.Descriptor().Path()
}

// Metadata returns the extracted header, if any.
func (e *Entry) Metadata() (*interfaces.Metadata, bool) {
	return e.File.Metadata()
}

// Content returns the file body with any header removed.
func (e *Entry) Content() []byte {
	return e.File.Content()
}
