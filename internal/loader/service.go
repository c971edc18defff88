package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sitefile/internal/identity"
	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/internal/metadata"
	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/internal/storage"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithExtractor overrides the metadata extractor. Passing nil disables
// extraction so files are returned verbatim.
func WithExtractor(extractor source.Extractor) ServiceOption {
	return func(s *service) {
		s.extractor = extractor
	}
}

// WithCache routes classification through a descriptor cache.
func WithCache(cache *source.Cache) ServiceOption {
	return func(s *service) {
		s.cache = cache
	}
}

// WithSchemaValidator validates extracted metadata against per kind schemas.
func WithSchemaValidator(validator *metadata.SchemaValidator) ServiceOption {
	return func(s *service) {
		s.schemas = validator
	}
}

// WithLister sets the lister used by LoadDirectory. Readers that also
// implement storage.Lister are used automatically.
func WithLister(lister storage.Lister) ServiceOption {
	return func(s *service) {
		if lister != nil {
			s.lister = lister
		}
	}
}

// WithConcurrency bounds the number of concurrent reads in a batch.
func WithConcurrency(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.concurrency = limit
		}
	}
}

// WithSkipInvalid drops unrecognised paths from batch results instead of
// reporting them as errors.
func WithSkipInvalid(skip bool) ServiceOption {
	return func(s *service) {
		s.skipInvalid = skip
	}
}

// WithTimeout bounds every batch. Zero disables the deadline.
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *service) {
		if timeout < 0 {
			timeout = 0
		}
		s.timeout = timeout
	}
}

// WithLogger injects the logger used for batch diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp entries.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// service implements Service.
type service struct {
	reader      source.Reader
	lister      storage.Lister
	extractor   source.Extractor
	cache       *source.Cache
	schemas     *metadata.SchemaValidator
	concurrency int
	skipInvalid bool
	timeout     time.Duration
	logger      interfaces.Logger
	now         func() time.Time
}

// NewService constructs a loader reading through reader.
func NewService(reader source.Reader, opts ...ServiceOption) Service {
	if reader == nil {
		panic("loader: reader cannot be nil")
	}
	s := &service{
		reader:      reader,
		extractor:   metadata.NewExtractor(),
		concurrency: defaultConcurrency,
		logger:      logging.NoOp(),
		now:         time.Now,
	}
	if lister, ok := reader.(storage.Lister); ok {
		s.lister = lister
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Describe classifies each path without touching storage.
func (s *service) Describe(_ context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		desc, err := s.parse(p)
		results = append(results, Result{
			Path:       p,
			Descriptor: desc,
			Err:        classify(err),
		})
	}
	return results
}

// Load reads a single file and derives its identifiers.
func (s *service) Load(ctx context.Context, path string) (*Entry, error) {
	desc, err := s.parse(path)
	if err != nil {
		return nil, classify(err)
	}
	return s.load(ctx, desc, s.logger)
}

// LoadAll loads paths with bounded concurrency. Entries and errors are
// ordered by path.
func (s *service) LoadAll(ctx context.Context, paths []string) ([]*Entry, []error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"run_id": identity.RunUUID().String(),
	})
	logger.Debug("loader.batch.start", "files", len(paths))

	type outcome struct {
		path  string
		entry *Entry
		err   error
	}
	outcomes := make([]outcome, len(paths))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			outcomes[i].path = p
			if err := ctx.Err(); err != nil {
				outcomes[i].err = classify(err)
				return nil
			}
			desc, err := s.parse(p)
			if err != nil {
				if s.skipInvalid && unrecognised(err) {
					logger.Warn("loader.file.skipped", "file_path", p, "error", err)
					return nil
				}
				outcomes[i].err = classify(err)
				return nil
			}
			outcomes[i].entry, outcomes[i].err = s.load(ctx, desc, logger)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].path < outcomes[j].path
	})

	var (
		entries []*Entry
		errs    []error
	)
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			errs = append(errs, o.err)
		case o.entry != nil:
			entries = append(entries, o.entry)
		}
	}

	logger.Info("loader.batch.complete", "loaded", len(entries), "failed", len(errs))
	return entries, errs
}

// LoadDirectory lists every file below root and loads the result.
func (s *service) LoadDirectory(ctx context.Context, root string) ([]*Entry, []error) {
	if s.lister == nil {
		return nil, []error{classifyListing(ErrListingUnsupported)}
	}
	names, err := s.lister.List(ctx, root)
	if err != nil {
		return nil, []error{classifyListing(err)}
	}
	s.logger.Debug("loader.directory.listed", "root", root, "files", len(names))
	return s.LoadAll(ctx, names)
}

func (s *service) load(ctx context.Context, desc source.Descriptor, logger interfaces.Logger) (*Entry, error) {
	fileLogger := logging.WithFileContext(logger, desc.Path(), desc.Kind().String(), localeOf(desc), desc.Format().String())

	file, err := source.ReadDescriptor(ctx, desc, s.reader, s.extractor)
	if err != nil {
		fileLogger.Error("loader.file.failed", "error", err)
		return nil, classify(err)
	}

	meta, hasMeta := file.Metadata()
	if hasMeta && s.schemas != nil {
		if err := s.schemas.Validate(desc.Kind(), meta); err != nil {
			fileLogger.Warn("loader.file.metadata_invalid", "error", err)
			return nil, classify(err)
		}
	}

	sum := sha256.Sum256(file.Content())
	entry := &Entry{
		ID:       identity.FileUUID(desc.Path()),
		Slug:     entrySlug(desc, meta),
		Checksum: hex.EncodeToString(sum[:]),
		LoadedAt: s.now(),
		File:     file,
	}
	fileLogger.Debug("loader.file.loaded", "slug", entry.Slug)
	return entry, nil
}

func (s *service) parse(path string) (source.Descriptor, error) {
	var (
		desc source.Descriptor
		err  error
	)
	if s.cache != nil {
		desc, err = s.cache.ParseLocation(path)
	} else {
		desc, err = source.ParseLocation(path)
	}
	if err != nil {
		return desc, err
	}
	if escapesRoot(desc) {
		return source.Descriptor{}, &source.PathError{Code: source.CodeInvalidPath, Path: path}
	}
	return desc, nil
}

// escapesRoot reports whether the directory part of desc holds a ".."
// segment, which would let a read resolve outside the backend root.
func escapesRoot(desc source.Descriptor) bool {
	dir, ok := desc.Directory()
	if !ok {
		return false
	}
	for _, segment := range strings.FieldsFunc(dir, func(r rune) bool { return r == '/' || r == '\\' }) {
		if segment == ".." {
			return true
		}
	}
	return false
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// entrySlug prefers the slug declared in metadata and falls back to the
// normalised file name.
func entrySlug(desc source.Descriptor, meta *interfaces.Metadata) string {
	if meta != nil {
		if declared := strings.TrimSpace(meta.Slug); declared != "" {
			return declared
		}
	}
	if normalized, err := slug.Normalize(desc.Name()); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(desc.Name())
}

func localeOf(desc source.Descriptor) string {
	if locale, ok := desc.Locale(); ok {
		return locale.Raw()
	}
	return ""
}
