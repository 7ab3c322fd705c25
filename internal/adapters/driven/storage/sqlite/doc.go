// Package sqlite persists the import ledger in a SQLite database.
//
// It uses modernc.org/sqlite, a pure Go driver, so the binary builds
// without CGO. The schema lives in versioned migrations under
// migrations/; applied versions are tracked in schema_migrations.
//
// By default the database is stored at ~/.sourcerank/data/imports.db.
package sqlite
