// Package migrations embeds SQL migration files applied by goose.
package migrations

import "embed"

// FS holds the migration files in lexical order.
//
//go:embed *.sql
var FS embed.FS
