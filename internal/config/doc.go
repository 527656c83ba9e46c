// Package config loads pricecli configuration and resolves its directories.
//
// # Configuration Sources
//
// Configuration is built from the following sources, later ones winning:
//
//	1. Default() values
//	2. A YAML file: $PRICES_CONFIG_FILE, else config.yaml or configs/config.yaml
//	3. Environment variables prefixed with PRICES_
//
// # Environment Variables
//
//	PRICES_DATASET_BASE_DIR=datasets
//	PRICES_DATASET_DELIMITER=,
//	PRICES_DATASET_MAX_ATTEMPTS=3
//	PRICES_SERVER_PORT=8080
//	PRICES_LOGGING_LEVEL=debug
//	PRICES_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Path Management
//
// Paths resolves relative directories against the executable directory:
//
//	paths, err := config.GetPaths(cfg.Dataset)
//	exportPath := paths.GetExportPath("prices.xlsx")
//
// The dataset base directory is fixed once Paths is built; components
// receive it explicitly instead of reading a package-level value.
package config
