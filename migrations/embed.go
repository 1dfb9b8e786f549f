// Package migrations embeds the SQL migration files so goose can apply them
// programmatically at server bootstrap and from integration tests.
package migrations

import "embed"

// FS holds every *.sql migration embedded at compile time. Passing it to
// goose.UpContext keeps the schema and the binary in lockstep — there is no
// migrations directory to ship or to drift.
//
//go:embed *.sql
var FS embed.FS
