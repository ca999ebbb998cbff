package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS wizard_state (
	key        TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// SQLiteStore keeps snapshots in a single-file SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ Store  = (*SQLiteStore)(nil)
	_ Purger = (*SQLiteStore)(nil)
)

// sqliteTime matches the format of SQLite's datetime().
const sqliteTime = "2006-01-02 15:04:05"

// OpenSQLite opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: SQLite has a single writer and :memory: is per connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite busy_timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create wizard_state table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, key string) (State, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM wizard_state WHERE key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Default(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}
	return decodeLogged(key, []byte(doc)), nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, key string, st State) error {
	doc, err := Encode(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wizard_state (key, doc, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		key, string(doc),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM wizard_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

// PurgeBefore implements Purger.
func (s *SQLiteStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM wizard_state WHERE updated_at < ?`, cutoff.UTC().Format(sqliteTime))
	if err != nil {
		return 0, fmt.Errorf("purge state: %w", err)
	}
	return res.RowsAffected()
}

// putRaw writes a document without encoding it. Tests use it to plant
// corrupt data.
func (s *SQLiteStore) putRaw(ctx context.Context, key, doc string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO wizard_state (key, doc) VALUES (?, ?)`, key, doc)
	return err
}
