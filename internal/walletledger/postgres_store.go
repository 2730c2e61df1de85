package walletledger

import (
	"context"
	"database/sql"
)

// PostgresStore guarda o snapshot da carteira em uma linha única por chave
//
//	CREATE TABLE wallet_snapshots (
//	    key     TEXT PRIMARY KEY,
//	    payload JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	DB  *sql.DB
	Key string
}

func NewPostgresStore(db *sql.DB, key string) *PostgresStore {
	return &PostgresStore{DB: db, Key: key}
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, bool, error) {
	var b []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT payload FROM wallet_snapshots WHERE key=$1`, s.Key).Scan(&b)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, payload []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO wallet_snapshots(key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		s.Key, payload)
	return err
}
