// Package migrations embeds the goose SQL migrations applied at server
// startup and by integration tests.
package migrations

import "embed"

// FS holds all *.sql migration files. Pass it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
