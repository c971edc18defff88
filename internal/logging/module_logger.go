package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// Logger names used across the module. Command handlers log under
// sitefile.commands.<group>.
const (
	rootModule   = "sitefile"
	loaderModule = "sitefile.loader"
	cliModule    = "sitefile.cli"
)

const (
	fieldFilePath   = "file_path"
	fieldFileKind   = "kind"
	fieldFileLocale = "locale"
	fieldFileFormat = "format"
)

// ModuleLogger asks provider for the named logger and tags it with a module
// field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// LoaderLogger is the logger used by the batch loader.
func LoaderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, loaderModule)
}

// CLILogger is the logger used by cmd/sitefile.
func CLILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cliModule)
}

// WithFileContext tags logger with a file's path and classification.
// Blank values are left out.
func WithFileContext(logger interfaces.Logger, path, kind, locale, format string) interfaces.Logger {
	fields := make(map[string]any, 4)
	for key, value := range map[string]string{
		fieldFilePath:   path,
		fieldFileKind:   kind,
		fieldFileLocale: locale,
		fieldFileFormat: format,
	} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger  { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
