// Package catalog provides file-based catalog loaders and appenders.
//
// Loaders read tab-separated tables with a header row and plain-text URL
// lists. They tolerate a UTF-8 byte-order mark, missing optional columns
// (see the default table of each Parse function) and blank or malformed
// lines, which are skipped with a warning.
//
// Appenders implement the append-only side used by imports: rows are
// deduplicated by exact URL by the caller and a header is written only
// when the file is created.
package catalog
