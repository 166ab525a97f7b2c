package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

const (
	selectInsightsCacheQuery = `SELECT cache_key, payload, created_at, updated_at
FROM insights_cache
WHERE cache_key = $1`

	upsertInsightsCacheQuery = `INSERT INTO insights_cache (cache_key, payload)
VALUES (:cache_key, :payload)
ON CONFLICT (cache_key) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = NOW()`

	purgeInsightsCacheQuery = `DELETE FROM insights_cache WHERE updated_at < $1`
)

// InsightsCacheStore is the key-value port of the insights cache backed by
// the insights_cache table.
type InsightsCacheStore struct {
	db *sqlx.DB
}

func NewInsightsCacheStore(db *sqlx.DB) *InsightsCacheStore {
	return &InsightsCacheStore{db: db}
}

func (s *InsightsCacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row insightsCacheTableModel
	if err := s.db.GetContext(ctx, &row, selectInsightsCacheQuery, key); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, crerr.Wrapf(err, "get insights cache %s", key)
	}
	return row.Payload, true, nil
}

func (s *InsightsCacheStore) Set(ctx context.Context, key, value string) error {
	model := insightsCacheUpsertModel{CacheKey: key, Payload: value}
	if _, err := s.db.NamedExecContext(ctx, upsertInsightsCacheQuery, model); err != nil {
		return crerr.Wrapf(err, "upsert insights cache %s", key)
	}
	return nil
}

// PurgeOlderThan removes rows not rewritten since cutoff.
func (s *InsightsCacheStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, purgeInsightsCacheQuery, cutoff.UTC())
	if err != nil {
		return 0, crerr.Wrap(err, "purge insights cache")
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, crerr.Wrap(err, "purge insights cache rows affected")
	}
	return removed, nil
}
