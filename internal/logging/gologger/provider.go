package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// Config mirrors the logging section of the runtime configuration.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger module loggers keyed by sitefile module name.
type Provider struct {
	root *glog.BaseLogger
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

// NewProvider builds a go-logger root from cfg. Unknown levels and formats
// are rejected so a typo in sitefile.yaml fails at startup.
func NewProvider(cfg Config) (*Provider, error) {
	options, err := cfg.options()
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(options...)
	if focus := cleanFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func (cfg Config) options() ([]glog.Option, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	options := []glog.Option{format()}

	if name := strings.ToLower(strings.TrimSpace(cfg.Level)); name != "" {
		level, ok := levels[name]
		if !ok {
			return nil, fmt.Errorf("logging: unsupported go-logger level %q", cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return options, nil
}

// GetLogger returns the child logger for a module such as "sitefile.loader".
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return &adapter{inner: p.root}
	}
	return &adapter{inner: p.root.GetLogger(name)}
}

type adapter struct {
	inner glog.Logger
	ctx   context.Context
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.withContextArgs(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.withContextArgs(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.withContextArgs(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.withContextArgs(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.withContextArgs(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.withContextArgs(args)...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return &adapter{inner: with.WithFields(maps.Clone(fields)), ctx: l.ctx}
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return &adapter{inner: with.With(pairs(fields)...), ctx: l.ctx}
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &adapter{inner: l.inner.WithContext(ctx), ctx: ctx}
}

// withContextArgs prepends fields stored with logging.ContextWithFields
// (command, run_id) so they reach go-logger output. Call arguments come last
// and win on duplicate keys.
func (l *adapter) withContextArgs(args []any) []any {
	fields := logging.ContextFields(l.ctx)
	if len(fields) == 0 {
		return args
	}
	return append(pairs(fields), args...)
}

func pairs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, key, fields[key])
	}
	return out
}

func cleanFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" && !slices.Contains(out, trimmed) {
			out = append(out, trimmed)
		}
	}
	return out
}
