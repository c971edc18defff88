package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("sitefile.loader")
	logger = logging.WithFields(logger, map[string]any{"module": "sitefile.loader"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	runID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("loader.file.loaded",
		"run_id", runID,
		"read_at", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO loader.file.loaded correlation_id=req-1234 logger=sitefile.loader module=sitefile.loader read_at=2024-03-15T08:00:00Z run_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("sitefile.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
	if strings.Contains(lines[0], "ignored.debug") {
		t.Fatalf("unexpected debug log present: %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"":        console.LevelInfo,
		"warning": console.LevelWarn,
		" error ": console.LevelError,
	}
	for name, want := range cases {
		got, ok := console.ParseLevel(name)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}

func TestConsoleLogger_FocusLimitsOtherModules(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
		Focus:    []string{"sitefile.loader"},
	})

	provider.GetLogger("sitefile.loader").Debug("loader.debug")
	provider.GetLogger("sitefile.storage").Debug("storage.debug")
	provider.GetLogger("sitefile.storage").Warn("storage.warn")

	out := buf.String()
	if !strings.Contains(out, "loader.debug") || !strings.Contains(out, "storage.warn") {
		t.Fatalf("expected focused debug and unfocused warn, got %s", out)
	}
	if strings.Contains(out, "storage.debug") {
		t.Fatalf("expected unfocused debug to be dropped, got %s", out)
	}
}

func TestConsoleLogger_PositionalAndQuotedValues(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("sitefile.test").Info("entry", "path", "pages/read me.md", "dangling")

	out := buf.String()
	if !strings.Contains(out, `path="pages/read me.md"`) {
		t.Fatalf("expected quoted value, got %s", out)
	}
	if !strings.Contains(out, "field_1=dangling") {
		t.Fatalf("expected positional field, got %s", out)
	}
}
