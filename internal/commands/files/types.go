package filescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitefile/internal/loader"
)

const (
	describePathsMessageType = "sitefile.files.describe"
	loadFilesMessageType     = "sitefile.files.load"
	scanDirectoryMessageType = "sitefile.files.scan"
)

// Sink receives the outcome of a files command. It is optional and invoked
// synchronously from the handler before Execute returns.
type Sink func(ResultEnvelope)

// ResultEnvelope captures what a files command produced. Only the slices
// relevant to the operation are populated.
type ResultEnvelope struct {
	Operation string
	Described []loader.Result
	Entries   []*loader.Entry
	Errors    []error
}

// DescribePathsCommand classifies paths without reading them.
type DescribePathsCommand struct {
	Paths []string `json:"paths"`
	Sink  Sink     `json:"-"`
}

// Type implements command.Message.
func (DescribePathsCommand) Type() string { return describePathsMessageType }

// Validate ensures at least one non-empty path is supplied and that no
// path climbs out of the backend root.
func (m DescribePathsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Paths,
			validation.Required,
			validation.By(nonEmptyPaths),
			validation.Each(validation.By(insideRoot)),
		),
	)
}

// LoadFilesCommand reads and extracts the given paths.
type LoadFilesCommand struct {
	Paths []string `json:"paths"`
	Sink  Sink     `json:"-"`
}

// Type implements command.Message.
func (LoadFilesCommand) Type() string { return loadFilesMessageType }

// Validate ensures at least one non-empty path is supplied and that no
// path climbs out of the backend root.
func (m LoadFilesCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Paths,
			validation.Required,
			validation.By(nonEmptyPaths),
			validation.Each(validation.By(insideRoot)),
		),
	)
}

// ScanDirectoryCommand loads every source file below Directory. An empty
// directory scans the whole backend.
type ScanDirectoryCommand struct {
	Directory string `json:"directory,omitempty"`
	Sink      Sink   `json:"-"`
}

// Type implements command.Message.
func (ScanDirectoryCommand) Type() string { return scanDirectoryMessageType }

// Validate rejects directories that climb out of the backend root.
func (m ScanDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, validation.By(insideRoot)),
	)
}

func nonEmptyPaths(value any) error {
	paths, _ := value.([]string)
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			return validation.NewError("sitefile.files.path_empty", "paths must not contain empty values")
		}
	}
	return nil
}

func insideRoot(value any) error {
	location, _ := value.(string)
	for _, segment := range strings.FieldsFunc(location, isSeparator) {
		if segment == ".." {
			return validation.NewError("sitefile.files.path_escapes", "path must stay inside the source root")
		}
	}
	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
