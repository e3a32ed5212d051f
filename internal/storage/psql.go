package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*PsqlStore)(nil)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS tracker_kv (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// pgxDB is satisfied by *pgxpool.Pool.
type pgxDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PsqlStore struct {
	db pgxDB
}

func NewPsqlStore(db pgxDB) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

func (s *PsqlStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create tracker_kv table: %w", err)
	}
	return nil
}

func (s *PsqlStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	var value string
	if err := s.db.QueryRow(
		ctx,
		`SELECT value::text FROM tracker_kv WHERE key = $1`,
		key,
	).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("select [%s]: %w", key, err)
	}

	return []byte(value), nil
}

func (s *PsqlStore) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	if err := validateKey(key); err != nil {
		return err
	}

	tag, err := s.db.Exec(
		ctx,
		`INSERT INTO tracker_kv (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("upsert [%s]: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("upsert [%s]: no rows affected", key)
	}

	return nil
}

func (s *PsqlStore) Delete(ctx context.Context, key string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	if _, err := s.db.Exec(ctx, `DELETE FROM tracker_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete [%s]: %w", key, err)
	}
	return nil
}
