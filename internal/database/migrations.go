package database

import "embed"

// MigrationsFS holds the SQL migrations; MigrationsPath is their directory inside it.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

const MigrationsPath = "migrations"
