package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by PostgresStore.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS wizard_state (
	key        TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps snapshots in a JSONB column.
type PostgresStore struct {
	db DBTX
}

var (
	_ Store  = (*PostgresStore)(nil)
	_ Purger = (*PostgresStore)(nil)
)

// NewPostgresStore creates the table if needed.
func NewPostgresStore(ctx context.Context, db DBTX) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, pgSchema); err != nil {
		return nil, fmt.Errorf("create wizard_state table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Load implements Store.
func (p *PostgresStore) Load(ctx context.Context, key string) (State, error) {
	var doc string
	err := p.db.QueryRow(ctx, `SELECT doc::text FROM wizard_state WHERE key = $1`, key).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return Default(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}
	return decodeLogged(key, []byte(doc)), nil
}

// Save implements Store.
func (p *PostgresStore) Save(ctx context.Context, key string, s State) error {
	doc, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO wizard_state (key, doc, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, string(doc),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Delete implements Store.
func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM wizard_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

// PurgeBefore implements Purger.
func (p *PostgresStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM wizard_state WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge state: %w", err)
	}
	return tag.RowsAffected(), nil
}

// decodeLogged is Decode with a warning when the stored document is not JSON.
func decodeLogged(key string, doc []byte) State {
	if !json.Valid(doc) {
		slog.Warn("state: corrupt document, using defaults",
			"key", key,
			"bytes", len(doc),
		)
	}
	return Decode(doc)
}
