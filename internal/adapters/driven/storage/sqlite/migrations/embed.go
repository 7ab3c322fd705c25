// Package migrations embeds the SQL schema for the import ledger.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and .down.sql files.
//
//go:embed *.sql
var FS embed.FS
