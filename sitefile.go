package sitefile

import (
	"context"

	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/goliatone/go-sitefile/internal/di"
	"github.com/goliatone/go-sitefile/internal/loader"
	"github.com/goliatone/go-sitefile/internal/metadata"
	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/internal/storage"
	"github.com/goliatone/go-sitefile/internal/watch"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

type (
	// Kind exports the authoring role derived from a path root.
	Kind = source.Kind
	// Format exports the content encoding derived from a path extension.
	Format = source.Format
	// Locale exports the raw locale tag carried by a path.
	Locale = source.Locale
	// Descriptor exports the classification of one path.
	Descriptor = source.Descriptor
	// Span exports a byte range into a descriptor path.
	Span = source.Span
	// File exports a loaded source file.
	File = source.File
	// Reader exports the storage read contract.
	Reader = source.Reader
	// Extractor exports the metadata extraction contract.
	Extractor = source.Extractor
	// ExtractorFunc adapts a function to Extractor.
	ExtractorFunc = source.ExtractorFunc
	// Metadata exports the extracted header block.
	Metadata = interfaces.Metadata
	// DescriptorCache exports the bounded descriptor cache.
	DescriptorCache = source.Cache
	// Backend exports the readable, listable storage contract.
	Backend = storage.Backend
	// LoaderService exports the batch loader contract.
	LoaderService = loader.Service
	// Entry exports a loaded file plus its derived identifiers.
	Entry = loader.Entry
	// Result exports the classification outcome of one path.
	Result = loader.Result
	// Option exports container overrides accepted by New.
	Option = di.Option
	// WatchEvent exports a classified change reported by Watch.
	WatchEvent = watch.Event
	// WatchOp exports the change operation carried by a WatchEvent.
	WatchOp = watch.Op
)

const (
	KindInclude = source.KindInclude
	KindLayout  = source.KindLayout
	KindPage    = source.KindPage

	FormatHTML     = source.FormatHTML
	FormatMarkdown = source.FormatMarkdown
	FormatYAML     = source.FormatYAML
	FormatJSON     = source.FormatJSON
	FormatScript   = source.FormatScript
	FormatShell    = source.FormatShell
)

var (
	ErrPathUnrecognized   = source.ErrPathUnrecognized
	ErrKindUnrecognized   = source.ErrKindUnrecognized
	ErrFormatUnrecognized = source.ErrFormatUnrecognized
	ErrInvalidPath        = source.ErrInvalidPath
	ErrIO                 = source.ErrIO
	ErrMetadataMalformed  = metadata.ErrMalformed
	ErrSchemaValidation   = metadata.ErrSchemaValidation
	ErrBatchIncomplete    = filescmd.ErrBatchIncomplete
	ErrWatchUnsupported   = di.ErrWatchUnsupported
)

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithLogWriter      = di.WithLogWriter
	WithBackend        = di.WithBackend
	WithLoader         = di.WithLoader
)

// ParseKind maps a root directory token onto a Kind.
func ParseKind(token string) (Kind, error) {
	return source.ParseKind(token)
}

// ParseFormat maps a file extension onto a Format.
func ParseFormat(ext string) (Format, error) {
	return source.ParseFormat(ext)
}

// Parse classifies a root relative path.
func Parse(path string) (Descriptor, error) {
	return source.Parse(path)
}

// ParseLocation classifies a location that must be valid UTF-8.
func ParseLocation(location string) (Descriptor, error) {
	return source.ParseLocation(location)
}

// Read classifies location and loads it through reader, extracting any header
// block with the default extractor.
func Read(ctx context.Context, location string, reader Reader) (*File, error) {
	return source.Read(ctx, location, reader, metadata.NewExtractor())
}

// NewDiskBackend returns a backend rooted at dir.
func NewDiskBackend(dir string) Backend {
	return storage.NewDisk(dir)
}

// NewMemoryBackend returns an empty in-memory backend that can be seeded with
// WriteFile.
func NewMemoryBackend() *storage.Billy {
	return storage.NewMemory()
}

// Module is the top level façade over the configured loader and handlers.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional container overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Loader returns the configured loader service.
func (m *Module) Loader() LoaderService {
	return m.container.Loader()
}

// Describe classifies paths without reading them.
func (m *Module) Describe(ctx context.Context, paths ...string) []Result {
	return m.container.Loader().Describe(ctx, paths)
}

// Load reads one file.
func (m *Module) Load(ctx context.Context, path string) (*Entry, error) {
	return m.container.Loader().Load(ctx, path)
}

// LoadAll reads paths with the configured concurrency and skip policy.
func (m *Module) LoadAll(ctx context.Context, paths ...string) ([]*Entry, []error) {
	return m.container.Loader().LoadAll(ctx, paths)
}

// LoadDirectory reads every file below root.
func (m *Module) LoadDirectory(ctx context.Context, root string) ([]*Entry, []error) {
	return m.container.Loader().LoadDirectory(ctx, root)
}

// Watch calls fn for every change below the includes, layouts and pages
// directories of the configured root until ctx is done. It requires the os
// storage provider.
func (m *Module) Watch(ctx context.Context, fn func(context.Context, WatchEvent)) error {
	watcher, err := m.container.Watcher()
	if err != nil {
		return err
	}
	return watcher.Run(ctx, fn)
}
