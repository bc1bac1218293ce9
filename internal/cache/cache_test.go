package cache

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCacheHitAndExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock[[]string](5*time.Minute, clock.now)

	if _, ok := c.Get(); ok {
		t.Error("empty cache should miss")
	}

	c.Set([]string{"a", "b"})
	v, ok := c.Get()
	if !ok || len(v) != 2 {
		t.Errorf("expected fresh hit, got (%v, %v)", v, ok)
	}

	clock.advance(4 * time.Minute)
	if _, ok := c.Get(); !ok {
		t.Error("entry should still be fresh before TTL")
	}

	clock.advance(2 * time.Minute)
	if _, ok := c.Get(); ok {
		t.Error("entry should have expired after TTL")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New[int](time.Hour)
	c.Set(42)
	c.Invalidate()

	if _, ok := c.Get(); ok {
		t.Error("invalidated cache should miss")
	}
}

func TestGetOrFetch(t *testing.T) {
	c := New[int](time.Hour)
	calls := 0
	fetch := func() (int, error) {
		calls++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrFetch(fetch)
		if err != nil {
			t.Fatalf("GetOrFetch failed: %v", err)
		}
		if v != 7 {
			t.Errorf("GetOrFetch = %d, want 7", v)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	c.Invalidate()
	if _, err := c.GetOrFetch(fetch); err != nil {
		t.Fatalf("GetOrFetch after invalidate failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("invalidate should force a refetch, fetch called %d times", calls)
	}
}

func TestGetOrFetchErrorLeavesCacheEmpty(t *testing.T) {
	c := New[int](time.Hour)
	wantErr := errors.New("store down")

	if _, err := c.GetOrFetch(func() (int, error) { return 0, wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("expected fetch error, got %v", err)
	}
	if _, ok := c.Get(); ok {
		t.Error("failed fetch must not populate the cache")
	}
}

func TestRefreshReplacesValue(t *testing.T) {
	c := New[int](time.Hour)
	c.Set(1)

	v, err := c.Refresh(func() (int, error) { return 2, nil })
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if v != 2 {
		t.Errorf("Refresh = %d, want 2", v)
	}
	if got, _ := c.Get(); got != 2 {
		t.Errorf("cached value = %d, want 2", got)
	}
}
