package runtimeconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SITEFILE_"

// LoadOptions tells Load where configuration comes from. Later sources win:
// defaults, then the YAML file, then the env file, then the process
// environment.
type LoadOptions struct {
	Path    string
	EnvFile string
	// Lookup replaces os.LookupEnv, mainly for tests.
	Lookup func(key string) (string, bool)
}

// Load builds a validated Config.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if path := strings.TrimSpace(opts.Path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("sitefile config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("sitefile config: decode %s: %w", path, err)
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if envFile := strings.TrimSpace(opts.EnvFile); envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("sitefile config: read env file %s: %w", envFile, err)
		}
		lookup = overlay(values, lookup)
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// overlay prefers the process environment over env file values.
func overlay(values map[string]string, lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := values[key]
		return value, ok
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		value, ok := lookup(envPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	stringFields := map[string]*string{
		"ROOT":          &cfg.Root,
		"STORAGE":       &cfg.Storage.Provider,
		"S3_ENDPOINT":   &cfg.Storage.S3.Endpoint,
		"S3_REGION":     &cfg.Storage.S3.Region,
		"S3_ACCESS_KEY": &cfg.Storage.S3.AccessKey,
		"S3_SECRET_KEY": &cfg.Storage.S3.SecretKey,
		"S3_BUCKET":     &cfg.Storage.S3.Bucket,
		"S3_PREFIX":     &cfg.Storage.S3.Prefix,
		"LOG_PROVIDER":  &cfg.Logging.Provider,
		"LOG_LEVEL":     &cfg.Logging.Level,
		"LOG_FORMAT":    &cfg.Logging.Format,
	}
	for name, target := range stringFields {
		if value, ok := get(name); ok {
			*target = value
		}
	}

	ints := map[string]*int{
		"CACHE_SIZE":  &cfg.Cache.Size,
		"CONCURRENCY": &cfg.Loader.Concurrency,
	}
	for name, target := range ints {
		if value, ok := get(name); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("sitefile config: %s%s: %w", envPrefix, name, err)
			}
			*target = parsed
		}
	}

	bools := map[string]*bool{
		"S3_USE_SSL":       &cfg.Storage.S3.UseSSL,
		"SKIP_INVALID":     &cfg.Loader.SkipInvalid,
		"EXTRACT_METADATA": &cfg.Metadata.Extract,
	}
	for name, target := range bools {
		if value, ok := get(name); ok {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("sitefile config: %s%s: %w", envPrefix, name, err)
			}
			*target = parsed
		}
	}

	durations := map[string]*time.Duration{
		"TIMEOUT":      &cfg.Loader.Timeout,
		"WATCH_SETTLE": &cfg.Watch.Settle,
	}
	for name, target := range durations {
		if value, ok := get(name); ok {
			parsed, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("sitefile config: %s%s: %w", envPrefix, name, err)
			}
			*target = parsed
		}
	}
	return nil
}
