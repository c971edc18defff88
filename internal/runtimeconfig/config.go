package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrRootRequired = errors.New("sitefile config: source root is required")
var ErrStorageProviderUnknown = errors.New("sitefile config: storage provider is invalid")
var ErrS3BucketRequired = errors.New("sitefile config: s3 storage requires endpoint, bucket and credentials")
var ErrCacheSizeInvalid = errors.New("sitefile config: cache size must be zero or positive")
var ErrLoaderConcurrencyInvalid = errors.New("sitefile config: loader concurrency must be at least 1")
var ErrLoaderTimeoutInvalid = errors.New("sitefile config: loader timeout must be zero or positive")
var ErrMetadataSchemaRootUnknown = errors.New("sitefile config: metadata schema root must be includes, layouts or pages")
var ErrLoggingProviderRequired = errors.New("sitefile config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("sitefile config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitefile config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitefile config: logging format is invalid")
var ErrWatchSettleInvalid = errors.New("sitefile config: watch settle must be zero or positive")

// Config aggregates everything needed to classify and load a site source tree.
type Config struct {
	Root     string         `yaml:"root"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	Loader   LoaderConfig   `yaml:"loader"`
	Metadata MetadataConfig `yaml:"metadata"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
}

// StorageConfig selects the backend files are read from.
type StorageConfig struct {
	// Provider is one of "os", "memory" or "s3".
	Provider string   `yaml:"provider"`
	S3       S3Config `yaml:"s3"`
}

// S3Config configures the MinIO/S3 backend.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// CacheConfig bounds the descriptor cache. Size 0 disables it.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// LoaderConfig controls batch loading policy.
type LoaderConfig struct {
	Concurrency int           `yaml:"concurrency"`
	SkipInvalid bool          `yaml:"skip_invalid"`
	Timeout     time.Duration `yaml:"timeout"`
}

// MetadataConfig controls header extraction and validation.
type MetadataConfig struct {
	Extract bool `yaml:"extract"`
	// Schemas maps a kind root ("pages") to a JSON schema file.
	Schemas map[string]string `yaml:"schemas"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// WatchConfig tunes change notification for disk-backed trees.
type WatchConfig struct {
	// Settle coalesces bursts of events for the same path.
	Settle time.Duration `yaml:"settle"`
}

// DefaultConfig returns defaults for a site rooted at the working directory.
func DefaultConfig() Config {
	return Config{
		Root: ".",
		Storage: StorageConfig{
			Provider: "os",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Cache: CacheConfig{
			Size: 1024,
		},
		Loader: LoaderConfig{
			Concurrency: 8,
			Timeout:     30 * time.Second,
		},
		Metadata: MetadataConfig{
			Extract: true,
			Schemas: map[string]string{},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Watch: WatchConfig{
			Settle: 100 * time.Millisecond,
		},
	}
}

// Validate performs field and consistency checks.
func (cfg Config) Validate() error {
	provider := normalizeProvider(cfg.Storage.Provider)
	if provider != "memory" && strings.TrimSpace(cfg.Root) == "" {
		return ErrRootRequired
	}
	if !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if provider == "s3" {
		s3 := cfg.Storage.S3
		err := validation.ValidateStruct(&s3,
			validation.Field(&s3.Endpoint, validation.Required),
			validation.Field(&s3.Bucket, validation.Required),
			validation.Field(&s3.AccessKey, validation.Required),
			validation.Field(&s3.SecretKey, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrS3BucketRequired, err)
		}
	}
	if err := validation.Validate(cfg.Cache.Size, validation.Min(0)); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSizeInvalid, err)
	}
	if err := validation.Validate(cfg.Loader.Concurrency, validation.Min(1)); err != nil {
		return fmt.Errorf("%w: %v", ErrLoaderConcurrencyInvalid, err)
	}
	if err := validation.Validate(cfg.Loader.Timeout, validation.Min(time.Duration(0))); err != nil {
		return fmt.Errorf("%w: %v", ErrLoaderTimeoutInvalid, err)
	}
	if err := validation.Validate(cfg.Watch.Settle, validation.Min(time.Duration(0))); err != nil {
		return fmt.Errorf("%w: %v", ErrWatchSettleInvalid, err)
	}
	for root := range cfg.Metadata.Schemas {
		if err := validation.Validate(strings.ToLower(root), validation.In("includes", "layouts", "pages")); err != nil {
			return fmt.Errorf("%w: %s", ErrMetadataSchemaRootUnknown, root)
		}
	}

	logProvider := normalizeProvider(cfg.Logging.Provider)
	if logProvider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(logProvider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if logProvider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "os", "memory", "s3":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
