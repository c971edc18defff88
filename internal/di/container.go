package di

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-sitefile/internal/commands"
	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/goliatone/go-sitefile/internal/loader"
	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/internal/logging/console"
	"github.com/goliatone/go-sitefile/internal/logging/gologger"
	"github.com/goliatone/go-sitefile/internal/metadata"
	"github.com/goliatone/go-sitefile/internal/runtimeconfig"
	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/internal/storage"
	"github.com/goliatone/go-sitefile/internal/watch"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// ErrWatchUnsupported is returned by Watcher when files are not read from
// local disk.
var ErrWatchUnsupported = errors.New("di: watching requires the os storage provider")

// CommandRegistry receives the command handlers built by the container.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandSubscription releases a dispatcher subscription.
type CommandSubscription interface {
	Unsubscribe()
}

// Container wires configuration into the loader, its collaborators and the
// command handlers.
type Container struct {
	config         runtimeconfig.Config
	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	backend storage.Backend
	cache   *source.Cache
	schemas *metadata.SchemaValidator
	loader  loader.Service

	describeHandler *filescmd.DescribePathsHandler
	loadHandler     *filescmd.LoadFilesHandler
	scanHandler     *filescmd.ScanDirectoryHandler
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter sets the destination of the console provider. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithBackend overrides the storage backend selected by the config.
func WithBackend(backend storage.Backend) Option {
	return func(c *Container) {
		if backend != nil {
			c.backend = backend
		}
	}
}

// WithLoader overrides the loader service.
func WithLoader(svc loader.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.loader = svc
		}
	}
}

// NewContainer validates cfg and builds every service it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config:    cfg,
		logWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging, c.logWriter)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.backend == nil {
		backend, err := storage.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("configure storage: %w", err)
		}
		c.backend = backend
	}

	if cfg.Cache.Size > 0 {
		cache, err := source.NewCache(cfg.Cache.Size)
		if err != nil {
			return nil, fmt.Errorf("configure descriptor cache: %w", err)
		}
		c.cache = cache
	}

	if len(cfg.Metadata.Schemas) > 0 {
		schemas, err := metadata.LoadSchemaValidator(cfg.Metadata.Schemas)
		if err != nil {
			return nil, fmt.Errorf("configure metadata schemas: %w", err)
		}
		c.schemas = schemas
	}

	if c.loader == nil {
		c.loader = c.buildLoader()
	}
	c.configureHandlers()

	logging.ModuleLogger(c.loggerProvider, "sitefile.container").Debug("container.configured",
		"storage", c.config.Storage.Provider,
		"cache_size", c.config.Cache.Size,
		"schemas", len(c.config.Metadata.Schemas),
	)
	return c, nil
}

func (c *Container) buildLoader() loader.Service {
	opts := []loader.ServiceOption{
		loader.WithConcurrency(c.config.Loader.Concurrency),
		loader.WithSkipInvalid(c.config.Loader.SkipInvalid),
		loader.WithTimeout(c.config.Loader.Timeout),
		loader.WithLogger(logging.LoaderLogger(c.loggerProvider)),
	}
	if c.cache != nil {
		opts = append(opts, loader.WithCache(c.cache))
	}
	if c.schemas != nil {
		opts = append(opts, loader.WithSchemaValidator(c.schemas))
	}
	if !c.config.Metadata.Extract {
		opts = append(opts, loader.WithExtractor(nil))
	}
	return loader.NewService(c.backend, opts...)
}

func (c *Container) configureHandlers() {
	logger := commands.CommandLogger(c.loggerProvider, "files")
	timeout := c.config.Loader.Timeout
	c.describeHandler = filescmd.NewDescribePathsHandler(c.loader, logger,
		commands.WithTimeout[filescmd.DescribePathsCommand](timeout))
	c.loadHandler = filescmd.NewLoadFilesHandler(c.loader, logger,
		commands.WithTimeout[filescmd.LoadFilesCommand](timeout))
	c.scanHandler = filescmd.NewScanDirectoryHandler(c.loader, logger,
		commands.WithTimeout[filescmd.ScanDirectoryCommand](timeout))
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider returns the provider every module logger derives from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Backend returns the storage backend.
func (c *Container) Backend() storage.Backend {
	return c.backend
}

// Cache returns the descriptor cache, or nil when caching is disabled.
func (c *Container) Cache() *source.Cache {
	return c.cache
}

// SchemaValidator returns the metadata validator, or nil when no schemas are configured.
func (c *Container) SchemaValidator() *metadata.SchemaValidator {
	return c.schemas
}

// Loader returns the loader service.
func (c *Container) Loader() loader.Service {
	return c.loader
}

// DescribeHandler returns the handler for DescribePathsCommand.
func (c *Container) DescribeHandler() *filescmd.DescribePathsHandler {
	return c.describeHandler
}

// LoadHandler returns the handler for LoadFilesCommand.
func (c *Container) LoadHandler() *filescmd.LoadFilesHandler {
	return c.loadHandler
}

// ScanHandler returns the handler for ScanDirectoryCommand.
func (c *Container) ScanHandler() *filescmd.ScanDirectoryHandler {
	return c.scanHandler
}

// Watcher returns a change watcher for the configured root. Only the os
// storage provider can be watched.
func (c *Container) Watcher() (*watch.Watcher, error) {
	if provider := strings.ToLower(strings.TrimSpace(c.config.Storage.Provider)); provider != "os" {
		return nil, fmt.Errorf("%w: %s", ErrWatchUnsupported, provider)
	}
	opts := []watch.Option{
		watch.WithLogger(logging.ModuleLogger(c.loggerProvider, "sitefile.watch")),
		watch.WithSettle(c.config.Watch.Settle),
	}
	if c.cache != nil {
		opts = append(opts, watch.WithCache(c.cache))
	}
	return watch.New(c.config.Root, opts...), nil
}

// RegisterCommands hands every command handler to registry.
func (c *Container) RegisterCommands(registry CommandRegistry) error {
	if registry == nil {
		return nil
	}
	for _, handler := range []any{c.describeHandler, c.loadHandler, c.scanHandler} {
		if err := registry.RegisterCommand(handler); err != nil {
			return fmt.Errorf("register command handler %T: %w", handler, err)
		}
	}
	return nil
}

// SubscribeCommands subscribes the handlers to the go-command dispatcher so
// messages can be sent with dispatcher.Dispatch.
func (c *Container) SubscribeCommands() []CommandSubscription {
	return []CommandSubscription{
		dispatcher.SubscribeCommand[filescmd.DescribePathsCommand](c.describeHandler),
		dispatcher.SubscribeCommand[filescmd.LoadFilesCommand](c.loadHandler),
		dispatcher.SubscribeCommand[filescmd.ScanDirectoryCommand](c.scanHandler),
	}
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, cfg.Level)
		}
		return console.NewProvider(console.Options{
			Writer:   w,
			MinLevel: &level,
			Focus:    cfg.Focus,
		}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("configure gologger: %w", err)
		}
		return provider, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}
