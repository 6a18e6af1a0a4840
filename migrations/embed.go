// Package migrations встраивает SQL миграции в бинарник,
// чтобы cmd/migrate не зависел от рабочей директории.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
