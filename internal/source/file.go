package source

import (
	"context"

	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// Reader returns the full contents of a named file.
type Reader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Extractor pulls an optional metadata block out of file content. It returns
// the remaining body, which may be a trimmed view of content. A nil metadata
// value with a nil error means the file carries no block.
type Extractor interface {
	Extract(format Format, content []byte) (*interfaces.Metadata, []byte, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(format Format, content []byte) (*interfaces.Metadata, []byte, error)

// Extract calls fn.
func (fn ExtractorFunc) Extract(format Format, content []byte) (*interfaces.Metadata, []byte, error) {
	return fn(format, content)
}

// File is a classified file together with its content and metadata block.
// Content is read once when the File is created and never refreshed.
type File struct {
	descriptor Descriptor
	metadata   *interfaces.Metadata
	content    []byte
}

// Read classifies location, reads it through reader and extracts metadata.
// A nil extractor leaves the content untouched and records no metadata.
func Read(ctx context.Context, location string, reader Reader, extractor Extractor) (*File, error) {
	desc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	return ReadDescriptor(ctx, desc, reader, extractor)
}

// ReadDescriptor loads the file named by an already classified descriptor.
func ReadDescriptor(ctx context.Context, desc Descriptor, reader Reader, extractor Extractor) (*File, error) {
	content, err := reader.ReadFile(ctx, desc.Path())
	if err != nil {
		return nil, &ReadError{Path: desc.Path(), Err: err}
	}

	var meta *interfaces.Metadata
	if extractor != nil {
		meta, content, err = extractor.Extract(desc.Format(), content)
		if err != nil {
			return nil, err
		}
	}

	return &File{
		descriptor: desc,
		metadata:   meta,
		content:    content,
	}, nil
}

// Descriptor returns the classification of the file path.
func (f *File) Descriptor() Descriptor {
	return f.descriptor
}

// Metadata returns the extracted metadata block, if the file had one.
func (f *File) Metadata() (*interfaces.Metadata, bool) {
	return f.metadata, f.metadata != nil
}

// Content returns the file body. Callers must not modify the returned slice.
func (f *File) Content() []byte {
	return f.content
}
