package insights

import "context"

// CacheRepository persists composites by aggregate key.
type CacheRepository interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Set(ctx context.Context, key string, entry CacheEntry) error
}
