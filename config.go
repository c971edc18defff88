package sitefile

import "github.com/goliatone/go-sitefile/internal/runtimeconfig"

var (
	ErrRootRequired              = runtimeconfig.ErrRootRequired
	ErrStorageProviderUnknown    = runtimeconfig.ErrStorageProviderUnknown
	ErrS3BucketRequired          = runtimeconfig.ErrS3BucketRequired
	ErrCacheSizeInvalid          = runtimeconfig.ErrCacheSizeInvalid
	ErrLoaderConcurrencyInvalid  = runtimeconfig.ErrLoaderConcurrencyInvalid
	ErrLoaderTimeoutInvalid      = runtimeconfig.ErrLoaderTimeoutInvalid
	ErrMetadataSchemaRootUnknown = runtimeconfig.ErrMetadataSchemaRootUnknown
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrWatchSettleInvalid        = runtimeconfig.ErrWatchSettleInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	S3Config       = runtimeconfig.S3Config
	CacheConfig    = runtimeconfig.CacheConfig
	LoaderConfig   = runtimeconfig.LoaderConfig
	MetadataConfig = runtimeconfig.MetadataConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	WatchConfig    = runtimeconfig.WatchConfig
	LoadOptions    = runtimeconfig.LoadOptions
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig resolves configuration from defaults, an optional YAML file, an
// optional dotenv file and SITEFILE_* environment variables.
func LoadConfig(opts LoadOptions) (Config, error) {
	return runtimeconfig.Load(opts)
}
