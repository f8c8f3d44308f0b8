// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and slot bootstrap.
// Each SQL slot backend has its own dialect directory.
package migrations

import (
	"embed"
	"io/fs"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Postgres returns the migrations for the Postgres slot, rooted so goose
// sees the files at the top level.
func Postgres() fs.FS {
	return mustSub("postgres")
}

// SQLite returns the migrations for the SQLite slot.
func SQLite() fs.FS {
	return mustSub("sqlite")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		// fs.Sub only fails on an invalid path, which is a compile-time constant here.
		panic("migrations: " + err.Error())
	}
	return sub
}
