// Package database opens the SQLite files r2ta reads and writes.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"r2ta/internal/util"

	_ "modernc.org/sqlite"
)

// DefaultBundleName is the file name looked up inside a data directory.
const DefaultBundleName = "binary_bundle.sqlite"

// ErrNoBundle reports a bundle path with no file behind it.
var ErrNoBundle = errors.New("no analysis bundle")

// ResolveBundle turns an input argument into a bundle file path.
//
// An empty input resolves to name inside the working directory, a directory
// resolves to name inside that directory and anything else is returned as is.
func ResolveBundle(input, name string) (string, error) {
	if name == "" {
		name = DefaultBundleName
	}
	path, err := util.ResolvePath(input, name)
	if err != nil {
		return "", fmt.Errorf("database: %w", err)
	}
	return path, nil
}

// CheckBundle fails with ErrNoBundle unless path is an existing file. Read
// paths call it first because Open would create an empty database.
func CheckBundle(path string) error {
	if !util.FileExists(path) {
		return fmt.Errorf("database: %w at %s", ErrNoBundle, path)
	}
	return nil
}

// Open opens a SQLite database at the provided path. The file and its
// parent directory are created if they do not exist.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("database: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("database: failed to open database: %w", err)
	}
	// Single-shot CLI: one connection keeps transactions and reads on the
	// same handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: failed to open %s: %w", path, err)
	}
	return db, nil
}
