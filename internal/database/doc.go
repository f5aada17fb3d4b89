// Package database provides the SQLite catalog of managed assets.
//
// Each imported or replaced asset is recorded once per (project root,
// relative path). The catalog is a convenience index for hosts: the managed
// tree on disk remains the source of truth, and every row can be rebuilt
// by importing the file again.
//
// The database runs in WAL mode with a busy timeout so concurrent imports
// can record results without "database is locked" errors.
package database
