package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || got != "v2" {
		t.Fatalf("expected overwritten value v2, got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestStore_RetentionExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(time.Hour)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	_ = store.Set(ctx, "a", "1")
	_ = store.Set(ctx, "b", "2")

	now = now.Add(59 * time.Minute)
	if _, ok, _ := store.Get(ctx, "a"); !ok {
		t.Fatalf("expected entry inside retention window")
	}

	now = now.Add(time.Minute)
	if _, ok, _ := store.Get(ctx, "a"); ok {
		t.Fatalf("expected entry to expire at retention boundary")
	}
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected sweep to remove 1 entry, got=%d", removed)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got=%d", store.Len())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_ = store.Set(ctx, key, "v")
			_, _, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if store.Len() != 4 {
		t.Fatalf("expected 4 keys, got=%d", store.Len())
	}
}
