package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/goliatone/go-sitefile"
	"github.com/goliatone/go-sitefile/internal/source"
)

type describeView struct {
	Path       string               `json:"path"`
	OK         bool                 `json:"ok"`
	Descriptor *sitefile.Descriptor `json:"descriptor,omitempty"`
	Error      *errorView           `json:"error,omitempty"`
}

type entryView struct {
	ID         string              `json:"id"`
	Slug       string              `json:"slug"`
	Checksum   string              `json:"checksum"`
	Size       int                 `json:"size"`
	LoadedAt   time.Time           `json:"loaded_at"`
	Descriptor sitefile.Descriptor `json:"descriptor"`
	Metadata   *sitefile.Metadata  `json:"metadata,omitempty"`
}

type errorView struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type loadView struct {
	Entries []entryView `json:"entries"`
	Errors  []errorView `json:"errors,omitempty"`
}

func newDescribeViews(results []sitefile.Result) []describeView {
	views := make([]describeView, 0, len(results))
	for _, result := range results {
		view := describeView{Path: result.Path, OK: result.OK()}
		if result.OK() {
			desc := result.Descriptor
			view.Descriptor = &desc
		} else {
			ev := newErrorView(result.Err)
			view.Error = &ev
		}
		views = append(views, view)
	}
	return views
}

func newLoadView(entries []*sitefile.Entry, errs []error) loadView {
	view := loadView{Entries: make([]entryView, 0, len(entries))}
	for _, entry := range entries {
		ev := entryView{
			ID:         entry.ID.String(),
			Slug:       entry.Slug,
			Checksum:   entry.Checksum,
			Size:       len(entry.Content()),
			LoadedAt:   entry.LoadedAt,
			Descriptor: entry.Descriptor(),
		}
		if meta, ok := entry.Metadata(); ok {
			ev.Metadata = meta
		}
		view.Entries = append(view.Entries, ev)
	}
	for _, err := range errs {
		view.Errors = append(view.Errors, newErrorView(err))
	}
	return view
}

func newErrorView(err error) errorView {
	return errorView{
		Code:    string(source.CodeOf(err)),
		Message: err.Error(),
	}
}

func writeJSON(w io.Writer, value any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(value)
}
