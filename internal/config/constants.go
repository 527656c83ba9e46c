package config

import (
	"time"

	"pricecli/pkg/contracts"
)

// Application constants
const (
	AppName    = "pricecli"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. PRICES_DATASET_BASE_DIR.
	EnvPrefix = "PRICES"

	// ConfigFileEnv names a YAML file to load instead of searching defaults.
	ConfigFileEnv = "PRICES_CONFIG_FILE"

	DefaultDatasetsDir = "datasets"
	DefaultExportsDir  = "exports"
	DefaultLogsDir     = "logs"
	DefaultDelimiter   = ","
	DefaultMaxAttempts = 3

	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultRateLimitRPS   = 50
	DefaultRateLimitBurst = 20
)

// DatasetExtensions are the file extensions treated as delimited datasets.
var DatasetExtensions = []string{".csv", ".txt"}
