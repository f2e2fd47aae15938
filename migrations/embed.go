// Package migrations embeds the SQL schema so binaries can migrate without the
// source tree next to them.
package migrations

import "embed"

// Postgres holds the user store migrations under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS
