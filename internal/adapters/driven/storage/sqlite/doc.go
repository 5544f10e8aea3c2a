// Package sqlite implements run-history persistence on SQLite. The
// database lives in the user's data directory and is migrated on open.
package sqlite
