// Package migrations ships the schema so binaries do not depend on a migrations directory
// next to the executable.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
