// Package shared groups helpers used by several packages that belong to no
// single layer. The testutil subpackage captures slog output and writes
// dataset fixtures for tests.
package shared
