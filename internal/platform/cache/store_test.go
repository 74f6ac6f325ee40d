package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "schedule:all", loader)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if got, _ := v.(string); got != "value" {
				t.Errorf("unexpected loaded value %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix_InvalidatesNamespace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "schedule:all", 1)
	store.Set(ctx, "schedule:2026-03-01:2026-03-31", 2)
	store.Set(ctx, "team:T1", 3)

	store.DeletePrefix(ctx, "schedule:")

	if _, ok := store.Get(ctx, "schedule:all"); ok {
		t.Fatalf("expected schedule:all to be invalidated")
	}
	if _, ok := store.Get(ctx, "schedule:2026-03-01:2026-03-31"); ok {
		t.Fatalf("expected ranged schedule key to be invalidated")
	}
	if _, ok := store.Get(ctx, "team:T1"); !ok {
		t.Fatalf("expected team key to survive schedule invalidation")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "k", "v")

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}
