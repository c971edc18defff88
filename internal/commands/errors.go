package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	TextCodeInvalidMessage  = "SITEFILE_COMMAND_VALIDATION_FAILED"
	TextCodeCanceled        = "SITEFILE_COMMAND_CONTEXT_CANCELED"
	TextCodeTimeout         = "SITEFILE_COMMAND_CONTEXT_TIMEOUT"
	TextCodeContext         = "SITEFILE_COMMAND_CONTEXT_ERROR"
	TextCodeExecutionFailed = "SITEFILE_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "sitefile command rejected").
		WithTextCode(TextCodeInvalidMessage)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	code, msg := TextCodeContext, "sitefile command context failed"
	if errors.Is(err, context.Canceled) {
		code, msg = TextCodeCanceled, "sitefile command cancelled"
	} else if errors.Is(err, context.DeadlineExceeded) {
		code, msg = TextCodeTimeout, "sitefile command timed out"
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "sitefile command failed").
		WithTextCode(TextCodeExecutionFailed)
}

// outcome resolves the telemetry status for an execution and tags the
// returned error. A handler that returns nil after its context expired still
// reports a context error.
func outcome(ctx context.Context, err error) (TelemetryStatus, error) {
	switch {
	case err != nil && isContextError(err):
		return TelemetryStatusContextError, wrapContextError(err)
	case err != nil:
		return TelemetryStatusFailed, wrapExecuteError(err)
	case ctx.Err() != nil:
		return TelemetryStatusContextError, wrapContextError(ctx.Err())
	}
	return TelemetryStatusSuccess, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
