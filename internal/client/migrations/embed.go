// Package migrations embeds the goose migrations for the local client
// database (mirror tables and the sync queue).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
