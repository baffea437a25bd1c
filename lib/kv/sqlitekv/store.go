// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitekv

import (
	"fmt"
	"io"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/cadenza-foundation/cadenza/lib/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   BLOB PRIMARY KEY,
    value BLOB NOT NULL
) WITHOUT ROWID;
`

// Store is a SQLite-backed ordered key-value store. It implements
// kv.Transactional. Construct with Open; call Close when done.
//
// Not safe for concurrent use — see the package comment.
type Store struct {
	conn   *sqlite.Conn
	logger *slog.Logger
	path   string
}

// Open opens (creating if necessary) the database at path and
// prepares the kv table. Use ":memory:" for an in-memory database in
// tests. A nil logger discards operational messages.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite|sqlite.OpenCreate|sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: opening %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlitekv: %s: %w", pragma, err)
		}
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlitekv: creating schema: %w", err)
	}

	logger.Info("sqlite store opened", "path", path)
	return &Store{conn: conn, logger: logger, path: path}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("sqlitekv: closing %s: %w", s.path, err)
	}
	s.logger.Info("sqlite store closed", "path", s.path)
	return nil
}

// Get implements kv.Store.
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	found := false
	err := sqlitex.Execute(s.conn, "SELECT value FROM kv WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = make([]byte, stmt.ColumnLen(0))
			stmt.ColumnBytes(0, value)
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: get: %w", err)
	}
	if !found {
		return nil, kv.ErrNotFound
	}
	return value, nil
}

// Set implements kv.Store.
func (s *Store) Set(key, value []byte) error {
	err := sqlitex.Execute(s.conn,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value",
		&sqlitex.ExecOptions{Args: []any{key, value}})
	if err != nil {
		return fmt.Errorf("sqlitekv: set: %w", err)
	}
	return nil
}

// Delete implements kv.Store.
func (s *Store) Delete(key []byte) error {
	err := sqlitex.Execute(s.conn, "DELETE FROM kv WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
	})
	if err != nil {
		return fmt.Errorf("sqlitekv: delete: %w", err)
	}
	return nil
}

// Range implements kv.Store. The ORDER BY rides the primary key
// index, so the scan reads only the requested window.
func (s *Store) Range(lower, upper []byte, limit int) ([]kv.Entry, error) {
	query := "SELECT key, value FROM kv"
	var args []any
	switch {
	case lower != nil && upper != nil:
		query += " WHERE key >= ? AND key < ?"
		args = []any{lower, upper}
	case lower != nil:
		query += " WHERE key >= ?"
		args = []any{lower}
	case upper != nil:
		query += " WHERE key < ?"
		args = []any{upper}
	}
	query += " ORDER BY key ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var entries []kv.Entry
	err := sqlitex.Execute(s.conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			key := make([]byte, stmt.ColumnLen(0))
			stmt.ColumnBytes(0, key)
			value := make([]byte, stmt.ColumnLen(1))
			stmt.ColumnBytes(1, value)
			entries = append(entries, kv.Entry{Key: key, Value: value})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: range: %w", err)
	}
	return entries, nil
}

// Update implements kv.Transactional via a savepoint: fn's mutations
// are released together on success and rolled back together on error
// or panic. Savepoints nest, so Update calls may be nested.
func (s *Store) Update(fn func(kv.Store) error) (err error) {
	release := sqlitex.Save(s.conn)
	defer release(&err)
	return fn(s)
}
