// Package export serializes the catalog into the JSON artifacts consumed by
// the static dashboard.
//
// The full-catalog and restricted-only documents are written in streaming
// fashion: rows are fetched lazily, projected one at a time, and appended to
// an already-open JSON array, so memory use stays flat regardless of catalog
// size. A row that fails projection is logged and skipped without breaking
// the surrounding document.
package export
