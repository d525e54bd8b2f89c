// Package migrations embeds the goose schema migrations for every supported
// metadata store. Each dialect lives in its own directory of Migrations.
package migrations

import "embed"

const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
