// Package app assembles pricecli from its configuration: logger, telemetry,
// the dataset pipeline, services, and the HTTP router and server.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, the YAML file and PRICES_* variables
//	2. Resolve directories and create the ones the application writes to
//	3. Initialize logging and OpenTelemetry
//	4. Wire Locator, Loader, Discovery and the export Manager into services
//	5. Set up HTTP handlers and middleware
//
// The CLI uses the same Application for its subcommands and only calls
// Run for "serve".
//
// # Graceful Shutdown
//
// Run serves until its context is cancelled, then gives in-flight requests
// Server.ShutdownTimeout to complete. Close flushes telemetry and closes
// the log file. Neither calls os.Exit.
package app
