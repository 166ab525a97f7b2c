package postgres

import "time"

type insightsCacheTableModel struct {
	CacheKey  string    `db:"cache_key"`
	Payload   string    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type insightsCacheUpsertModel struct {
	CacheKey string `db:"cache_key"`
	Payload  string `db:"payload"`
}
