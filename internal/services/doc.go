// Package services sits between the transports (CLI, HTTP) and the dataset
// pipeline.
//
// DatasetService combines discovery, loading and export, and records the
// dataset_loads_total, dataset_load_duration_seconds and
// dataset_rows_ingested_total metrics for every load it performs.
// HealthService reports whether the dataset directory is usable.
package services
