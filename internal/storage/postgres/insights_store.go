// Package postgres provides Postgres-backed persistence for extraction
// records.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopsight/shopsight/internal/insights"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// InsightsStoreConfig controls the Postgres connection pool used for
// extraction records.
type InsightsStoreConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// InsightsStore persists extraction records in Postgres. The full aggregate
// travels as a JSONB payload; the queryable columns are denormalized
// alongside it.
type InsightsStore struct {
	pool  pgxPool
	table string
}

// NewInsightsStore creates a Postgres-backed InsightsStore using the
// provided config.
func NewInsightsStore(ctx context.Context, cfg InsightsStoreConfig) (*InsightsStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "insights_records"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &InsightsStore{pool: pool, table: table}, nil
}

// NewInsightsStoreWithPool constructs a store from an existing pool
// (primarily for testing).
func NewInsightsStoreWithPool(pool pgxPool, table string) (*InsightsStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "insights_records"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &InsightsStore{pool: pool, table: table}, nil
}

// Close releases the underlying pool resources.
func (s *InsightsStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// Save inserts one extraction record and returns its id.
func (s *InsightsStore) Save(ctx context.Context, rec insights.Record) (string, error) {
	if s == nil || s.pool == nil {
		return "", fmt.Errorf("insights store is not configured")
	}
	if rec.ID == "" {
		return "", fmt.Errorf("record id is required")
	}
	payload, err := json.Marshal(rec.Insights)
	if err != nil {
		return "", fmt.Errorf("marshal insights: %w", err)
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	store_url,
	store_name,
	payload,
	captured_at,
	processing_time,
	success,
	error_text
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8
)`, s.table)

	args := []any{
		rec.ID,
		rec.StoreURL,
		rec.StoreName,
		payload,
		rec.CapturedAt,
		rec.ProcessingTime,
		rec.Success,
		rec.ErrorText,
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert insights record: %w", err)
	}
	return rec.ID, nil
}

// Latest returns the most recent record for a store URL. The second return
// reports presence.
func (s *InsightsStore) Latest(ctx context.Context, storeURL string) (insights.Record, bool, error) {
	if s == nil || s.pool == nil {
		return insights.Record{}, false, fmt.Errorf("insights store is not configured")
	}
	query := fmt.Sprintf(`
SELECT id, store_url, store_name, payload, captured_at, processing_time, success, error_text
FROM %s
WHERE store_url = $1
ORDER BY captured_at DESC
LIMIT 1`, s.table)

	rec, err := scanRecord(s.pool.QueryRow(ctx, query, storeURL))
	if errors.Is(err, pgx.ErrNoRows) {
		return insights.Record{}, false, nil
	}
	if err != nil {
		return insights.Record{}, false, fmt.Errorf("query latest record: %w", err)
	}
	return rec, true, nil
}

// List returns records newest first.
func (s *InsightsStore) List(ctx context.Context, limit, offset int) ([]insights.Record, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("insights store is not configured")
	}
	query := fmt.Sprintf(`
SELECT id, store_url, store_name, payload, captured_at, processing_time, success, error_text
FROM %s
ORDER BY captured_at DESC
LIMIT $1 OFFSET $2`, s.table)

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []insights.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Delete removes every record for a store URL and returns the count.
func (s *InsightsStore) Delete(ctx context.Context, storeURL string) (int64, error) {
	if s == nil || s.pool == nil {
		return 0, fmt.Errorf("insights store is not configured")
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE store_url = $1`, s.table)
	tag, err := s.pool.Exec(ctx, query, storeURL)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (insights.Record, error) {
	var (
		rec     insights.Record
		payload []byte
	)
	if err := row.Scan(
		&rec.ID,
		&rec.StoreURL,
		&rec.StoreName,
		&payload,
		&rec.CapturedAt,
		&rec.ProcessingTime,
		&rec.Success,
		&rec.ErrorText,
	); err != nil {
		return insights.Record{}, err
	}
	if err := json.Unmarshal(payload, &rec.Insights); err != nil {
		return insights.Record{}, fmt.Errorf("unmarshal insights payload: %w", err)
	}
	return rec, nil
}
