package aff4resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGResolver persists stream metadata in PostgreSQL, keyed by subject and
// predicate URN, using an upsert so repeated SetString/SetInt calls for
// the same pair overwrite rather than accumulate rows (spec §4.6's
// metadata sync runs on every Flush).
type PGResolver struct {
	pool *pgxpool.Pool
}

// NewPGResolver opens a pooled connection to databaseURL and ensures the
// backing table exists.
func NewPGResolver(ctx context.Context, databaseURL string) (*PGResolver, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("aff4resolver: parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("aff4resolver: create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("aff4resolver: database unreachable: %w", err)
	}

	r := &PGResolver{pool: pool}
	if err := r.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("aff4resolver: migration failed: %w", err)
	}
	return r, nil
}

// Ping checks database connectivity.
func (r *PGResolver) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *PGResolver) Close() error {
	r.pool.Close()
	return nil
}

func (r *PGResolver) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS aff4_attributes (
		subject   TEXT NOT NULL,
		predicate TEXT NOT NULL,
		value     TEXT NOT NULL,
		PRIMARY KEY (subject, predicate)
	);

	CREATE INDEX IF NOT EXISTS idx_aff4_attributes_subject ON aff4_attributes(subject);
	`
	_, err := r.pool.Exec(ctx, schema)
	return err
}

func (r *PGResolver) GetString(ctx context.Context, subject, predicate string) (string, error) {
	query := `SELECT value FROM aff4_attributes WHERE subject = $1 AND predicate = $2`

	var value string
	err := r.pool.QueryRow(ctx, query, subject, predicate).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("aff4resolver: get %s/%s: %w", subject, predicate, err)
	}
	return value, nil
}

func (r *PGResolver) SetString(ctx context.Context, subject, predicate, value string) error {
	query := `
		INSERT INTO aff4_attributes (subject, predicate, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject, predicate) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.pool.Exec(ctx, query, subject, predicate, value)
	if err != nil {
		return fmt.Errorf("aff4resolver: set %s/%s: %w", subject, predicate, err)
	}
	return nil
}

func (r *PGResolver) GetInt(ctx context.Context, subject, predicate string) (int64, error) {
	query := `SELECT value::BIGINT FROM aff4_attributes WHERE subject = $1 AND predicate = $2`

	var value int64
	err := r.pool.QueryRow(ctx, query, subject, predicate).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("aff4resolver: get %s/%s: %w", subject, predicate, err)
	}
	return value, nil
}

func (r *PGResolver) SetInt(ctx context.Context, subject, predicate string, value int64) error {
	query := `
		INSERT INTO aff4_attributes (subject, predicate, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject, predicate) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.pool.Exec(ctx, query, subject, predicate, fmt.Sprintf("%d", value))
	if err != nil {
		return fmt.Errorf("aff4resolver: set %s/%s: %w", subject, predicate, err)
	}
	return nil
}
