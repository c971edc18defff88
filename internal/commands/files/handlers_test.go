package filescmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sitefile/internal/loader"
	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/internal/storage"
	"github.com/goliatone/go-sitefile/pkg/testsupport"
)

func TestDescribePathsHandler_Execute(t *testing.T) {
	handler := NewDescribePathsHandler(loader.NewService(storage.NewMemory()), nil)

	var envelope ResultEnvelope
	err := handler.Execute(context.Background(), DescribePathsCommand{
		Paths: []string{"pages/index.fr.md", "static/app.js"},
		Sink:  func(env ResultEnvelope) { envelope = env },
	})
	if err != nil {
		t.Fatalf("execute describe: %v", err)
	}
	if envelope.Operation != "describe" {
		t.Fatalf("expected describe operation, got %q", envelope.Operation)
	}
	if len(envelope.Described) != 2 {
		t.Fatalf("expected 2 results, got %d", len(envelope.Described))
	}
	locale, ok := envelope.Described[0].Descriptor.Locale()
	if !ok || locale.Raw() != ".fr" {
		t.Fatalf("expected .fr locale, got %v", envelope.Described[0].Descriptor)
	}
	if !errors.Is(envelope.Described[1].Err, source.ErrPathUnrecognized) {
		t.Fatalf("expected unrecognised path, got %v", envelope.Described[1].Err)
	}
}

func TestLoadFilesHandler_Execute(t *testing.T) {
	cmd := loadLoadFixture(t, "load_basic.json")
	backend := storage.NewMemory()
	for _, name := range cmd.Paths {
		if err := backend.WriteFile(name, []byte("---\ntitle: T\n---\nbody")); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	handler := NewLoadFilesHandler(loader.NewService(backend), nil)

	var envelope ResultEnvelope
	cmd.Sink = func(env ResultEnvelope) { envelope = env }
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute load: %v", err)
	}
	if len(envelope.Entries) != 2 || len(envelope.Errors) != 0 {
		t.Fatalf("expected 2 entries and no errors, got %d/%v", len(envelope.Entries), envelope.Errors)
	}
	if envelope.Entries[0].Path() != "layouts/base.html" {
		t.Fatalf("expected sorted entries, got %s", envelope.Entries[0].Path())
	}
}

func TestLoadFilesHandler_ReportsIncompleteBatch(t *testing.T) {
	handler := NewLoadFilesHandler(loader.NewService(storage.NewMemory()), nil)

	var envelope ResultEnvelope
	err := handler.Execute(context.Background(), LoadFilesCommand{
		Paths: []string{"pages/missing.md"},
		Sink:  func(env ResultEnvelope) { envelope = env },
	})
	if !errors.Is(err, ErrBatchIncomplete) {
		t.Fatalf("expected ErrBatchIncomplete, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if len(envelope.Errors) != 1 || !errors.Is(envelope.Errors[0], source.ErrIO) {
		t.Fatalf("expected io failure in envelope, got %v", envelope.Errors)
	}
}

func TestLoadFilesCommand_ValidateRejectsEmptyPaths(t *testing.T) {
	cmd := loadLoadFixture(t, "load_empty_path.json")
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected validation error for empty path")
	}
	if err := (LoadFilesCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing paths")
	}
}

func TestLoadFilesHandler_ValidationShortCircuits(t *testing.T) {
	called := false
	handler := NewLoadFilesHandler(loader.NewService(storage.NewMemory()), nil)

	err := handler.Execute(context.Background(), LoadFilesCommand{
		Sink: func(ResultEnvelope) { called = true },
	})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected sink not to run when validation fails")
	}
}

func TestLoadFilesHandler_RejectsPathsOutsideRoot(t *testing.T) {
	cmd := loadLoadFixture(t, "load_escape.json")
	backend := storage.NewMemory()
	for _, name := range []string{"pages/index.md", "secret/creds.md"} {
		if err := backend.WriteFile(name, []byte("body")); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	handler := NewLoadFilesHandler(loader.NewService(backend), nil)

	called := false
	cmd.Sink = func(ResultEnvelope) { called = true }
	err := handler.Execute(context.Background(), cmd)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected sink not to run for an escaping path")
	}

	describe := DescribePathsCommand{Paths: []string{`pages\..\secret\creds.md`}}
	if err := describe.Validate(); err == nil {
		t.Fatal("expected describe validation to reject backslash escape")
	}
}

func TestScanDirectoryHandler_Execute(t *testing.T) {
	backend := storage.NewMemory()
	for name, body := range map[string]string{
		"includes/footer.html": "<footer></footer>",
		"pages/index.md":       "home",
	} {
		if err := backend.WriteFile(name, []byte(body)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	handler := NewScanDirectoryHandler(loader.NewService(backend), nil)

	var envelope ResultEnvelope
	err := handler.Execute(context.Background(), ScanDirectoryCommand{
		Directory: "includes",
		Sink:      func(env ResultEnvelope) { envelope = env },
	})
	if err != nil {
		t.Fatalf("execute scan: %v", err)
	}
	if envelope.Operation != "scan" || len(envelope.Entries) != 1 {
		t.Fatalf("expected one scanned entry, got %+v", envelope)
	}
	if envelope.Entries[0].Descriptor().Kind() != source.KindInclude {
		t.Fatalf("expected include kind, got %v", envelope.Entries[0].Descriptor().Kind())
	}
}

func TestScanDirectoryCommand_ValidateRejectsEscape(t *testing.T) {
	var cmd ScanDirectoryCommand
	loadFixture(t, "scan_escape.json", &cmd)
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected validation error for escaping directory")
	}
	if err := (ScanDirectoryCommand{}).Validate(); err != nil {
		t.Fatalf("expected empty directory to be accepted, got %v", err)
	}
}

func loadLoadFixture(t *testing.T, name string) LoadFilesCommand {
	t.Helper()
	var cmd LoadFilesCommand
	loadFixture(t, name, &cmd)
	return cmd
}

func loadFixture(t *testing.T, name string, target any) {
	t.Helper()
	testsupport.LoadGolden(t, filepath.Join("testdata", name), target)
}
