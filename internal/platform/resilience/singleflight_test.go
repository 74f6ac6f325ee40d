package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("refresh:2026-03", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if got, _ := v.(string); got != "ok" {
				t.Errorf("unexpected value %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	v1, err, _ := g.Do("a", func() (any, error) { return 1, nil })
	if err != nil || v1.(int) != 1 {
		t.Fatalf("unexpected result for key a: %v %v", v1, err)
	}
	v2, err, _ := g.Do("b", func() (any, error) { return 2, nil })
	if err != nil || v2.(int) != 2 {
		t.Fatalf("unexpected result for key b: %v %v", v2, err)
	}
}
