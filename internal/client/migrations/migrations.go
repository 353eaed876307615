// Package migrations embeds the CLI state schema applied by goose on open.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
