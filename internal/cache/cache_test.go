package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemo_GetOrFetch_MemoizesForever(t *testing.T) {
	m := NewMemo[int]()
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (int, error) { calls++; return 42, nil }

	v, src, err := m.GetOrFetch(ctx, "k1", fetch)
	if err != nil || v != 42 || src != "fetch" {
		t.Fatalf("first: v=%d src=%s err=%v", v, src, err)
	}
	v2, src2, err := m.GetOrFetch(ctx, "k1", fetch)
	if err != nil || v2 != 42 || src2 != "cache" {
		t.Fatalf("second: v=%d src=%s err=%v", v2, src2, err)
	}
	if calls != 1 {
		t.Fatalf("fetch calls=%d", calls)
	}
	if m.Len() != 1 {
		t.Fatalf("len=%d", m.Len())
	}
}

func TestMemo_ErrorsNotCached(t *testing.T) {
	m := NewMemo[int]()
	ctx := context.Background()
	calls := 0
	bad := func(context.Context) (int, error) { calls++; return 0, errors.New("fetch-fail") }

	if _, src, err := m.GetOrFetch(ctx, "k", bad); err == nil || src != "" {
		t.Fatalf("expected error, src=%s err=%v", src, err)
	}
	if _, _, err := m.GetOrFetch(ctx, "k", bad); err == nil {
		t.Fatalf("expected error on retry")
	}
	if calls != 2 {
		t.Fatalf("failed fetch was cached, calls=%d", calls)
	}
	if m.Len() != 0 {
		t.Fatalf("len=%d", m.Len())
	}
}

func TestMemo_ConcurrentMissesCoalesce(t *testing.T) {
	m := NewMemo[string]()
	ctx := context.Background()
	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return "v", nil
	}

	var wg, ready sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		ready.Add(1)
		go func() {
			defer wg.Done()
			ready.Done()
			v, _, err := m.GetOrFetch(ctx, "k", fetch)
			if err != nil || v != "v" {
				t.Errorf("v=%s err=%v", v, err)
			}
		}()
	}
	ready.Wait()
	close(release)
	wg.Wait()
	if calls != 1 {
		t.Fatalf("coalescing failed, calls=%d", calls)
	}
}
