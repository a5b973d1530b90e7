// Package sqlite provides a SQLite-backed float store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files and is
// applied in its own transaction.
//
// # Data Location
//
// By default, the database is stored at ~/.bluequery/data/floats.db
package sqlite
