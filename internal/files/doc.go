// Package files locates and lists dataset files and writes export files.
//
// Locator resolves a dataset filename against the configured base directory
// and confirms it exists before anything tries to open it:
//
//	locator := files.NewLocator(paths.DatasetsDir)
//	path, err := locator.Resolve("AAPL.csv")
//	if errors.Is(err, apperrors.ErrNotFound) {
//	    // ask again
//	}
//
// Discovery lists the .csv and .txt files in that directory, sorted by name.
// Manager writes export files atomically into the exports directory.
package files
