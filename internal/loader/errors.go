package loader

import (
	"context"
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sitefile/internal/metadata"
	"github.com/goliatone/go-sitefile/internal/source"
)

const (
	TextCodePathUnrecognized   = "SITEFILE_PATH_UNRECOGNIZED"
	TextCodeFormatUnrecognized = "SITEFILE_FORMAT_UNRECOGNIZED"
	TextCodeInvalidPath        = "SITEFILE_INVALID_PATH"
	TextCodeIOFailure          = "SITEFILE_IO_FAILURE"
	TextCodeMetadataInvalid    = "SITEFILE_METADATA_INVALID"
	TextCodeListingFailed      = "SITEFILE_LISTING_FAILED"
	TextCodeLoadInterrupted    = "SITEFILE_LOAD_INTERRUPTED"
)

// ErrListingUnsupported is returned by LoadDirectory when the reader cannot
// enumerate files.
var ErrListingUnsupported = errors.New("loader: reader does not support listing")

// classify tags err with the category and text code matching its source
// failure class. Errors already wrapped by go-errors pass through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	switch source.CodeOf(err) {
	case source.CodePathUnrecognized, source.CodeKindUnrecognized:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "unrecognised source path").
			WithTextCode(TextCodePathUnrecognized)
	case source.CodeFormatUnrecognized:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "unrecognised source format").
			WithTextCode(TextCodeFormatUnrecognized)
	case source.CodeInvalidPath:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid source path").
			WithTextCode(TextCodeInvalidPath)
	case source.CodeIOFailure:
		if errors.Is(err, fs.ErrNotExist) {
			return goerrors.Wrap(err, goerrors.CategoryNotFound, "source file not found").
				WithTextCode(TextCodeIOFailure)
		}
		return goerrors.Wrap(err, goerrors.CategoryOperation, "source file read failed").
			WithTextCode(TextCodeIOFailure)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "source load interrupted").
			WithTextCode(TextCodeLoadInterrupted)
	}
	if errors.Is(err, metadata.ErrMalformed) || errors.Is(err, metadata.ErrSchemaValidation) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "source metadata invalid").
			WithTextCode(TextCodeMetadataInvalid)
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, "source load failed")
}

func classifyListing(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, "source listing failed").
		WithTextCode(TextCodeListingFailed)
}

// unrecognised reports whether err is a classification failure, the class
// the SkipInvalid policy drops.
func unrecognised(err error) bool {
	switch source.CodeOf(err) {
	case source.CodePathUnrecognized, source.CodeKindUnrecognized,
		source.CodeFormatUnrecognized, source.CodeInvalidPath:
		return true
	}
	return false
}
