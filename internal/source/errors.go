package source

import (
	"errors"
	"fmt"
)

// Code names a failure class of the source package.
type Code string

const (
	CodePathUnrecognized   Code = "path-unrecognized"
	CodeKindUnrecognized   Code = "kind-unrecognized"
	CodeFormatUnrecognized Code = "format-unrecognized"
	CodeInvalidPath        Code = "invalid-path"
	CodeIOFailure          Code = "io-failure"
)

var (
	// ErrPathUnrecognized reports a path that does not follow the source tree grammar.
	ErrPathUnrecognized = errors.New("source: unexpected file path")
	// ErrKindUnrecognized reports a root segment that names no content kind.
	ErrKindUnrecognized = errors.New("source: unexpected file kind")
	// ErrFormatUnrecognized reports an extension that names no file format.
	ErrFormatUnrecognized = errors.New("source: unexpected file format")
	// ErrInvalidPath reports a location that is not UTF-8 text or that climbs
	// out of the source root.
	ErrInvalidPath = errors.New("source: invalid file path")
	// ErrIO reports a failed storage read.
	ErrIO = errors.New("source: read failed")
)

var codeSentinels = map[Code]error{
	CodePathUnrecognized:   ErrPathUnrecognized,
	CodeKindUnrecognized:   ErrKindUnrecognized,
	CodeFormatUnrecognized: ErrFormatUnrecognized,
	CodeInvalidPath:        ErrInvalidPath,
	CodeIOFailure:          ErrIO,
}

// ClassificationError is returned when a kind or format token is not part of
// the closed vocabulary.
type ClassificationError struct {
	Code  Code
	Token string
}

func (e *ClassificationError) Error() string {
	switch e.Code {
	case CodeKindUnrecognized:
		return fmt.Sprintf("unexpected file kind: %s", e.Token)
	default:
		return fmt.Sprintf("unexpected file format: %s", e.Token)
	}
}

func (e *ClassificationError) Unwrap() error {
	return codeSentinels[e.Code]
}

// PathError is returned when a whole path cannot be classified.
type PathError struct {
	Code Code
	Path string
}

func (e *PathError) Error() string {
	if e.Code == CodeInvalidPath {
		return "invalid file path"
	}
	return fmt.Sprintf("unexpected file path: %s", e.Path)
}

func (e *PathError) Unwrap() error {
	return codeSentinels[e.Code]
}

// ReadError wraps a storage failure for a classified path.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause to errors.Is/As.
func (e *ReadError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// CodeOf returns the code carried by err, or an empty string when err did not
// originate in this package.
func CodeOf(err error) Code {
	var classification *ClassificationError
	if errors.As(err, &classification) {
		return classification.Code
	}
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return pathErr.Code
	}
	var readErr *ReadError
	if errors.As(err, &readErr) {
		return CodeIOFailure
	}
	return ""
}
