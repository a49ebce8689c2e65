package history

import (
	"context"
	"errors"

	"github.com/PatF3lix/Mapty-App/internal/db"
	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps history blobs in a single key-value table, one
// row per key.
type PostgresStore struct {
	db db.Querier
}

func NewPostgresStore(q db.Querier) *PostgresStore {
	return &PostgresStore{db: q}
}

// EnsureSchema creates the blob table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS history_blobs (
			key        TEXT PRIMARY KEY,
			blob       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (s *PostgresStore) Put(ctx context.Context, key, blob string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO history_blobs (key, blob) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET blob=EXCLUDED.blob, updated_at=now()
	`, key, blob)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var blob string
	err := s.db.QueryRow(ctx, `SELECT blob FROM history_blobs WHERE key=$1`, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoBlob
	}
	if err != nil {
		return "", err
	}
	return blob, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM history_blobs WHERE key=$1`, key)
	return err
}
