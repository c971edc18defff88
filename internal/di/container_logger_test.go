package di_test

import (
	"context"
	"maps"
	"sync"
	"testing"

	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/goliatone/go-sitefile/internal/di"
	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/internal/runtimeconfig"
	"github.com/goliatone/go-sitefile/internal/storage"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

func TestContainerLogsThroughInjectedProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "debug"

	backend := storage.NewMemory()
	if err := backend.WriteFile("pages/index.md", []byte("home")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := newRecordingProvider()
	container, err := di.NewContainer(cfg, di.WithLoggerProvider(rec), di.WithBackend(backend))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "sitefile.container" {
		t.Fatalf("expected module field sitefile.container, got %v", got)
	}

	err = container.LoadHandler().Execute(context.Background(), filescmd.LoadFilesCommand{
		Paths: []string{"pages/index.md"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	batch := rec.find("loader.batch.complete")
	if batch == nil {
		t.Fatalf("expected loader.batch.complete entry, got %#v", rec.entries)
	}
	if got := batch.fields["module"]; got != "sitefile.loader" {
		t.Fatalf("expected loader module, got %v", got)
	}
	if _, ok := batch.fields["run_id"]; !ok {
		t.Fatalf("expected run_id field, got %v", batch.fields)
	}
	if got := batch.fields["command"]; got != "sitefile.files.load" {
		t.Fatalf("expected command from context on loader entry, got %v", got)
	}

	success := rec.find("command.execute.success")
	if success == nil {
		t.Fatalf("expected command.execute.success entry")
	}
	if got := success.fields["module"]; got != "sitefile.commands.files" {
		t.Fatalf("expected command module, got %v", got)
	}
}

// recordingProvider captures entries with logger, context and call fields
// merged in that order.
type recordingProvider struct {
	mu      sync.Mutex
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{provider: p, fields: map[string]any{"logger": name}}
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
	ctx      context.Context
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &recordingLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &recordingLogger{provider: l.provider, fields: l.fields, ctx: ctx}
}

func (l *recordingLogger) log(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	l.provider.entries = append(l.provider.entries, recordedEntry{level: level, msg: msg, fields: fields})
}
