// Package dataprocessing turns delimited daily price files into typed
// columns.
//
// A load resolves the filename through a files.Locator, checks the header
// for the seven required fields (Date, Open, High, Low, Close, Adj Close,
// Volume), then converts every record in a single pass:
//
//	loader := dataprocessing.NewLoader(files.NewLocator(paths.DatasetsDir),
//	    dataprocessing.WithLogger(logger))
//	ds, err := loader.Load(ctx, "AAPL.csv")
//
// Dates are parsed as YYYY-MM-DD into civil.Date, prices as float32 and
// volume as int32. The first conversion failure aborts the load; no
// partial dataset is ever returned. Failures are *errors.AppError values
// of type NOT_FOUND, SCHEMA_MISMATCH, TYPE_COERCION or PARSING.
//
// AsMap returns the same data keyed by canonical column name (date,
// open_price, high_price, low_price, close_price, adj_close_price, volume).
package dataprocessing
