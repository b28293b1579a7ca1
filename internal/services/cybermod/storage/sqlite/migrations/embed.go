package migrations

import "embed"

// FS contains embedded SQLite migrations for cybermod storage.
//
//go:embed *.sql
var FS embed.FS
