// Package search implements the catalog search service: request validation,
// query compilation and execution through pkg/catalog, and projection of raw
// rows into the response shape shared by the HTTP API and the CLI.
package search
