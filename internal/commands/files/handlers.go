package filescmd

import (
	"context"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sitefile/internal/commands"
	"github.com/goliatone/go-sitefile/internal/loader"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

const batchIncompleteCode = "SITEFILE_BATCH_INCOMPLETE"

// ErrBatchIncomplete is returned when a load finished with at least one
// failed file. The failures themselves are delivered through the Sink.
var ErrBatchIncomplete = errors.New("files: batch finished with failures")

// DescribePathsHandler classifies paths through the loader service.
type DescribePathsHandler struct {
	inner *commands.Handler[DescribePathsCommand]
}

// NewDescribePathsHandler constructs a handler wired to the provided loader.
func NewDescribePathsHandler(service loader.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DescribePathsCommand]) *DescribePathsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DescribePathsCommand) error {
		results := service.Describe(ctx, msg.Paths)
		invokeSink(msg.Sink, ResultEnvelope{
			Operation: "describe",
			Described: results,
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[DescribePathsCommand]{
		commands.WithLogger[DescribePathsCommand](baseLogger),
		commands.WithOperation[DescribePathsCommand]("files.describe"),
		commands.WithMessageFields(func(msg DescribePathsCommand) map[string]any {
			return map[string]any{"paths": len(msg.Paths)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DescribePathsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DescribePathsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DescribePathsCommand].
func (h *DescribePathsHandler) Execute(ctx context.Context, msg DescribePathsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LoadFilesHandler loads explicit paths through the loader service.
type LoadFilesHandler struct {
	inner *commands.Handler[LoadFilesCommand]
}

// NewLoadFilesHandler constructs a handler wired to the provided loader.
func NewLoadFilesHandler(service loader.Service, logger interfaces.Logger, opts ...commands.HandlerOption[LoadFilesCommand]) *LoadFilesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LoadFilesCommand) error {
		entries, errs := service.LoadAll(ctx, msg.Paths)
		return deliver(msg.Sink, "load", entries, errs)
	}

	handlerOpts := []commands.HandlerOption[LoadFilesCommand]{
		commands.WithLogger[LoadFilesCommand](baseLogger),
		commands.WithOperation[LoadFilesCommand]("files.load"),
		commands.WithMessageFields(func(msg LoadFilesCommand) map[string]any {
			return map[string]any{"paths": len(msg.Paths)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LoadFilesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LoadFilesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LoadFilesCommand].
func (h *LoadFilesHandler) Execute(ctx context.Context, msg LoadFilesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ScanDirectoryHandler loads every file below a directory.
type ScanDirectoryHandler struct {
	inner *commands.Handler[ScanDirectoryCommand]
}

// NewScanDirectoryHandler constructs a handler wired to the provided loader.
func NewScanDirectoryHandler(service loader.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ScanDirectoryCommand]) *ScanDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ScanDirectoryCommand) error {
		entries, errs := service.LoadDirectory(ctx, strings.TrimSpace(msg.Directory))
		return deliver(msg.Sink, "scan", entries, errs)
	}

	handlerOpts := []commands.HandlerOption[ScanDirectoryCommand]{
		commands.WithLogger[ScanDirectoryCommand](baseLogger),
		commands.WithOperation[ScanDirectoryCommand]("files.scan"),
		commands.WithMessageFields(func(msg ScanDirectoryCommand) map[string]any {
			fields := map[string]any{}
			if dir := strings.TrimSpace(msg.Directory); dir != "" {
				fields["directory"] = dir
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ScanDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ScanDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ScanDirectoryCommand].
func (h *ScanDirectoryHandler) Execute(ctx context.Context, msg ScanDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func deliver(sink Sink, operation string, entries []*loader.Entry, errs []error) error {
	invokeSink(sink, ResultEnvelope{
		Operation: operation,
		Entries:   entries,
		Errors:    errs,
	})
	if len(errs) == 0 {
		return nil
	}
	return goerrors.Wrap(ErrBatchIncomplete, goerrors.CategoryCommand, "files batch incomplete").
		WithTextCode(batchIncompleteCode)
}

func invokeSink(sink Sink, envelope ResultEnvelope) {
	if sink != nil {
		sink(envelope)
	}
}
