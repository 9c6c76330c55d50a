// Package blobstore persists serialized analysis records inside a single
// SQLite file.
//
// Every table holds one row per element. Rows are keyed by the 64-bit
// xxhash of the element identity; the identity string itself is stored
// next to the hash so that two identities sharing a hash never overwrite
// or shadow each other. Payloads are CBOR encoded.
package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"r2ta/internal/database"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"
)

// Entity is a record that can be written to the store.
type Entity interface {
	// Identity uniquely names the element within its table.
	Identity() string
	// Payload is the value serialized into the row.
	Payload() any
}

// Store is a table-partitioned blob store backed by one SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

var validTable = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// keyOf maps an identity to its row key. Overridden in tests to force
// collisions.
var keyOf = func(identity string) int64 {
	return int64(xxhash.Sum64String(identity))
}

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// Open opens or creates the store at path. A missing file is created.
func Open(path string) (*Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blobstore: %w: %w", ErrOpen, err)
	}
	zap.L().Debug("opened blob store", zap.String("path", path))
	return &Store{db: db, path: path}, nil
}

// Path returns the file the store was opened from.
func (s *Store) Path() string { return s.path }

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write upserts every record into table inside one transaction. Either all
// records are stored or none are. A later write of the same identity
// replaces the earlier payload.
func (s *Store) Write(ctx context.Context, table string, records []Entity) error {
	if err := checkTable(table); err != nil {
		return err
	}

	// Encode up front so a bad record never leaves a half-open transaction.
	type row struct {
		key      int64
		identity string
		data     []byte
	}
	rows := make([]row, 0, len(records))
	for _, r := range records {
		data, err := encMode.Marshal(r.Payload())
		if err != nil {
			return fmt.Errorf("blobstore: %w: %s in %s: %w", ErrEncode, r.Identity(), table, err)
		}
		rows = append(rows, row{key: keyOf(r.Identity()), identity: r.Identity(), data: data})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("blobstore: %w: begin transaction: %w", ErrOpen, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createTableDDL(table)); err != nil {
		return fmt.Errorf("blobstore: %w: create table %s: %w", ErrOpen, table, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+table+` (id, identity, data) VALUES (?, ?, ?)
		ON CONFLICT (id, identity) DO UPDATE SET data = excluded.data`)
	if err != nil {
		return fmt.Errorf("blobstore: %w: prepare upsert: %w", ErrOpen, err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.key, r.identity, r.data); err != nil {
			return fmt.Errorf("blobstore: %w: upsert %s into %s: %w", ErrOpen, r.identity, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("blobstore: %w: commit: %w", ErrOpen, err)
	}
	zap.L().Debug("wrote records", zap.String("table", table), zap.Int("rows", len(rows)))
	return nil
}

// Read looks up identity in table and decodes its payload as T.
func Read[T any](ctx context.Context, s *Store, table, identity string) (T, error) {
	var out T
	if err := s.ensureTable(ctx, table); err != nil {
		return out, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM `+table+` WHERE id = ? AND identity = ? LIMIT 1`,
		keyOf(identity), identity,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return out, fmt.Errorf("blobstore: %w: %s has no entry %q", ErrNoSuchAnalysis, table, identity)
	}
	if err != nil {
		return out, fmt.Errorf("blobstore: %w: query %s: %w", ErrOpen, table, err)
	}

	if err := decMode.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("blobstore: %w: %s in %s: %w", ErrDecode, identity, table, err)
	}
	return out, nil
}

// ReadAll decodes every row of table as T, ordered by key.
func ReadAll[T any](ctx context.Context, s *Store, table string) ([]T, error) {
	if err := s.ensureTable(ctx, table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT identity, data FROM `+table+` ORDER BY id, identity`)
	if err != nil {
		return nil, fmt.Errorf("blobstore: %w: query %s: %w", ErrOpen, table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var identity string
		var data []byte
		if err := rows.Scan(&identity, &data); err != nil {
			return nil, fmt.Errorf("blobstore: %w: scan %s: %w", ErrOpen, table, err)
		}
		var v T
		if err := decMode.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("blobstore: %w: %s in %s: %w", ErrDecode, identity, table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blobstore: %w: iterate %s: %w", ErrOpen, table, err)
	}
	zap.L().Debug("read table", zap.String("table", table), zap.Int("rows", len(out)))
	return out, nil
}

// Tables returns the names of all tables present in the store.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("blobstore: %w: list tables: %w", ErrOpen, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("blobstore: %w: scan table name: %w", ErrOpen, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Count returns the number of rows stored in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	if err := s.ensureTable(ctx, table); err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("blobstore: %w: count %s: %w", ErrOpen, table, err)
	}
	return n, nil
}

// ensureTable fails with ErrNoSuchAnalysis if table was never written.
func (s *Store) ensureTable(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("blobstore: %w: inspect schema: %w", ErrOpen, err)
	}
	if n == 0 {
		return fmt.Errorf("blobstore: %w: %s", ErrNoSuchAnalysis, table)
	}
	return nil
}

func checkTable(table string) error {
	if !validTable.MatchString(table) {
		return fmt.Errorf("blobstore: %w: %q", ErrInvalidTable, table)
	}
	return nil
}

func createTableDDL(table string) string {
	return `
		CREATE TABLE IF NOT EXISTS ` + table + ` (
			id       INTEGER NOT NULL,
			identity TEXT    NOT NULL,
			data     BLOB    NOT NULL,
			PRIMARY KEY (id, identity)
		)`
}
