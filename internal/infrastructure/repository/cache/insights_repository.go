package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/match-insights/internal/domain/insights"
)

// KeyValueStore is the storage port shared by every cache backend.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// InsightsRepository encodes cache entries as {data, cachedAt, ttl} JSON
// documents, with cachedAt and ttl in milliseconds.
type InsightsRepository struct {
	store KeyValueStore
}

var _ insights.CacheRepository = (*InsightsRepository)(nil)

func NewInsightsRepository(store KeyValueStore) *InsightsRepository {
	return &InsightsRepository{store: store}
}

type cacheEntryDocument struct {
	Data     insights.Composite `json:"data"`
	CachedAt int64              `json:"cachedAt"`
	TTL      int64              `json:"ttl"`
}

func (r *InsightsRepository) Get(ctx context.Context, key string) (insights.CacheEntry, bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return insights.CacheEntry{}, false, fmt.Errorf("read insights cache: %w", err)
	}
	if !ok {
		return insights.CacheEntry{}, false, nil
	}

	var doc cacheEntryDocument
	if err := sonic.UnmarshalString(raw, &doc); err != nil {
		return insights.CacheEntry{}, false, fmt.Errorf("decode insights cache %s: %w", key, err)
	}
	if doc.CachedAt <= 0 {
		return insights.CacheEntry{}, false, fmt.Errorf("decode insights cache %s: missing cachedAt", key)
	}

	return insights.CacheEntry{
		Data:     doc.Data.Normalize(),
		CachedAt: time.UnixMilli(doc.CachedAt).UTC(),
		TTL:      time.Duration(doc.TTL) * time.Millisecond,
	}, true, nil
}

func (r *InsightsRepository) Set(ctx context.Context, key string, entry insights.CacheEntry) error {
	raw, err := sonic.MarshalString(cacheEntryDocument{
		Data:     entry.Data.Normalize(),
		CachedAt: entry.CachedAt.UnixMilli(),
		TTL:      entry.TTL.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("encode insights cache %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write insights cache: %w", err)
	}
	return nil
}
