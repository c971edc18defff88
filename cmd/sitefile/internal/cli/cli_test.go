package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitefile"
	"github.com/goliatone/go-sitefile/internal/di"
	"github.com/stretchr/testify/require"
)

func withMemoryBackend(t *testing.T, files map[string]string) {
	t.Helper()
	backend := sitefile.NewMemoryBackend()
	for name, body := range files {
		require.NoError(t, backend.WriteFile(name, []byte(body)))
	}
	original := moduleBuilder
	moduleBuilder = func(cfg sitefile.Config, opts ...sitefile.Option) (*sitefile.Module, error) {
		return sitefile.New(cfg, append(opts, sitefile.WithBackend(backend))...)
	}
	t.Cleanup(func() { moduleBuilder = original })
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(&out, &errOut)
	cmd.SetArgs(append(args, "--env-file", "", "--log-provider", "none"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestDescribePrintsDescriptors(t *testing.T) {
	withMemoryBackend(t, nil)

	out, _, err := run(t, "describe", "pages/blog/hello.en-US.md", "docs/readme.md")
	require.NoError(t, err)

	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	require.Equal(t, true, views[0]["ok"])
	require.Equal(t, false, views[1]["ok"])

	descriptor, ok := views[0]["descriptor"].(map[string]any)
	require.True(t, ok, "expected descriptor object, got %v", views[0])
	require.Equal(t, "hello", descriptor["name"])

	errView, ok := views[1]["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "path-unrecognized", errView["code"])
}

func TestLoadPrintsEntries(t *testing.T) {
	withMemoryBackend(t, map[string]string{
		"pages/index.md": "---\ntitle: Home\n---\nwelcome",
	})

	out, _, err := run(t, "load", "pages/index.md")
	require.NoError(t, err)

	var view struct {
		Entries []struct {
			Slug     string         `json:"slug"`
			Size     int            `json:"size"`
			Metadata map[string]any `json:"metadata"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Entries, 1)
	require.Equal(t, "index", view.Entries[0].Slug)
	require.Equal(t, len("welcome"), view.Entries[0].Size)
	require.NotNil(t, view.Entries[0].Metadata)
}

func TestLoadFailsOnMissingFileButPrintsErrors(t *testing.T) {
	withMemoryBackend(t, nil)

	out, _, err := run(t, "load", "pages/missing.md")
	require.Error(t, err)
	require.True(t, errors.Is(err, sitefile.ErrBatchIncomplete), "got %v", err)
	require.Contains(t, out, "io-failure")
}

func TestScanSkipsInvalidWhenRequested(t *testing.T) {
	withMemoryBackend(t, map[string]string{
		"pages/a.md":  "a",
		"LICENSE.txt": "mit",
	})

	out, _, err := run(t, "scan", "--skip-invalid")
	require.NoError(t, err)
	require.Contains(t, out, `"slug":"a"`)
	require.NotContains(t, out, "LICENSE")

	_, _, err = run(t, "scan")
	require.Error(t, err)
}

func TestVersionShort(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	require.Equal(t, Version, strings.TrimSpace(out))
}

func TestWatchRequiresDiskStorage(t *testing.T) {
	_, _, err := run(t, "watch", "--storage", "memory")
	require.ErrorIs(t, err, di.ErrWatchUnsupported)
}

// syncBuffer lets the test read output while the watch goroutine writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReloadsChangedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pages"), 0o755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := &syncBuffer{}
	cmd := NewRootCommand(out, &syncBuffer{})
	cmd.SetArgs([]string{"watch", "--root", root, "--settle", "0", "--env-file", "", "--log-provider", "none"})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	target := filepath.Join(root, "pages", "index.md")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(target, []byte("---\ntitle: Home\n---\nwelcome"), 0o644)
		return strings.Contains(out.String(), `"title":"Home"`)
	}, 4*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	line, _, _ := strings.Cut(out.String(), "\n")
	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &view))
	require.Equal(t, "pages/index.md", view["path"])
}
