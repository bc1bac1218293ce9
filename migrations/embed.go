// Package migrations embeds the SQL schema migrations for both storage
// backends. Files follow the NNN_name.sql convention consumed by
// internal/migration.Runner.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
