package datasource

import (
	"errors"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Hour)

	if _, ok := cache.Get("https://example.com/a"); ok {
		t.Error("Expected miss on empty cache")
	}

	if err := cache.Set("https://example.com/a", []byte("payload")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, ok := cache.Get("https://example.com/a")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if string(data) != "payload" {
		t.Errorf("Expected payload, got %s", data)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(t.TempDir(), 10*time.Millisecond)

	cache.Set("key", []byte("stale"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestCacheKeysAreIndependent(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Hour)

	cache.Set("a", []byte("first"))
	cache.Set("b", []byte("second"))

	data, ok := cache.Get("a")
	if !ok || string(data) != "first" {
		t.Errorf("Expected first, got %s", data)
	}
}

func TestGetOrFetchCachesResult(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Hour)

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("fetched"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := cache.GetOrFetch("key", fetch)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if string(data) != "fetched" {
			t.Fatalf("Expected fetched, got %s", data)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 fetch call, got %d", calls)
	}
}

func TestGetOrFetchPropagatesError(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Hour)

	wantErr := errors.New("upstream down")
	_, err := cache.GetOrFetch("key", func() ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected upstream error, got %v", err)
	}

	if _, ok := cache.Get("key"); ok {
		t.Error("Expected failed fetch not to be cached")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Hour)

	cache.Set("key", []byte("data"))
	if err := cache.Clear(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, ok := cache.Get("key"); ok {
		t.Error("Expected miss after Clear")
	}
}
