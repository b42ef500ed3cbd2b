package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type PostgresSlot struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresSlot(logger zerolog.Logger, pgPool *pgxpool.Pool) *PostgresSlot {
	return &PostgresSlot{
		logger: logger,
		pgPool: pgPool,
	}
}

// EnsureTable creates the kv_slots table if it doesn't exist.
func (s *PostgresSlot) EnsureTable(ctx context.Context) error {
	const createTableQuery = `
CREATE TABLE IF NOT EXISTS kv_slots (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`
	_, err := s.pgPool.Exec(ctx, createTableQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create kv_slots table")
		return err
	}
	s.logger.Debug().Msg("ensured kv_slots table")
	return nil
}

func (s *PostgresSlot) Get(ctx context.Context, key string) ([]byte, error) {
	const selectSlotQuery = `
SELECT value
FROM kv_slots
WHERE key = $1
`
	var value []byte
	err := s.pgPool.QueryRow(
		ctx,
		selectSlotQuery,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotEmpty
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			s.logger.Warn().
				Str("key", key).
				Msg("kv_slots table is missing")
			return nil, ErrSlotEmpty
		}

		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to select slot")
		return nil, err
	}
	s.logger.Debug().
		Str("key", key).
		Int("size", len(value)).
		Msg("selected slot")
	return value, nil
}

func (s *PostgresSlot) Set(ctx context.Context, key string, value []byte) error {
	const upsertSlotQuery = `
INSERT INTO kv_slots (key,
                      value,
                      updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.pgPool.Exec(
		ctx,
		upsertSlotQuery,
		key,
		value,
		time.Now(),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to upsert slot")
		return err
	}
	s.logger.Debug().
		Str("key", key).
		Int("size", len(value)).
		Msg("upserted slot")
	return nil
}

func (s *PostgresSlot) Delete(ctx context.Context, key string) error {
	const deleteSlotQuery = `
DELETE FROM kv_slots
WHERE key = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteSlotQuery,
		key,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to delete slot")
		return err
	}
	s.logger.Debug().
		Str("key", key).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted slot")
	return nil
}

// Close is a no-op: the pool is owned by whoever created it.
func (s *PostgresSlot) Close() error {
	return nil
}
