// Package migrations embeds the ShareIt schema migrations so the goose
// programmatic API can apply them in tests and at server bootstrap.
package migrations

import "embed"

// FS holds the *.sql migration files embedded at compile time. Handing it
// to goose.NewProvider removes any dependency on a filesystem path at
// runtime.
//
//go:embed *.sql
var FS embed.FS
