// Package http implements the HTTP handlers of the pricecli API server.
// Handlers stay thin: they read route parameters, call the dataset or
// health service, and render JSON through go-chi/render.
//
// # Routes
//
//	GET /api/health                         health status
//	GET /api/datasets                       dataset files in the base directory
//	GET /api/datasets/{name}                typed columns keyed by canonical name
//	GET /api/datasets/{name}/summary        row count, date range, close range, volume
//	GET /api/datasets/{name}/export?format= csv (default) or xlsx download
//	GET /metrics                            Prometheus scrape endpoint
//
// # Error Handling
//
// All errors are rendered as RFC 7807 problems by errors.ErrorHandler.
// Dataset errors map as follows:
//
//	not found                 404 /errors/dataset/not-found
//	missing header fields     422 /errors/dataset/schema-mismatch
//	unconvertible cell        422 /errors/dataset/type-coercion
//	malformed delimited text  422 /errors/dataset/malformed
//	bad dataset name          400 /errors/dataset/invalid-name
package http
