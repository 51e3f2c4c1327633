// Package sqlite implements the store interfaces on top of a single
// SQLite database file.
//
// The driver is modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, which keeps the binary trivially cross-compilable. The
// database file is created on first open and the schema is applied through
// embedded goose migrations, so a fresh deployment needs no manual setup.
//
// All operations are safe for concurrent use. The database runs in WAL
// mode: readers proceed concurrently while writers serialize on the
// database-level write lock, with a busy timeout instead of immediate
// SQLITE_BUSY failures.
package sqlite
