package redis

import (
	"context"
	stderrors "errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// KVStore stores cache payloads as plain redis strings.
type KVStore struct {
	client    goredis.UniversalClient
	retention time.Duration
}

// Connect opens a client and verifies the server answers PING.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis %s", cfg.Addr)
	}
	return client, nil
}

func NewKVStore(client goredis.UniversalClient, retention time.Duration) *KVStore {
	return &KVStore{client: client, retention: retention}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if stderrors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, crerr.Wrapf(err, "redis get %s", key)
	}
	return value, true, nil
}

// Set writes value with the configured retention; zero retention keeps it forever.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.retention).Err(); err != nil {
		return crerr.Wrapf(err, "redis set %s", key)
	}
	return nil
}
