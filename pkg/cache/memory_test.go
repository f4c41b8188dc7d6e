package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheStringRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got string
	if err := mc.Get(ctx, "k", &got); err != nil || got != "v" {
		t.Fatalf("get: err=%v got=%q", err, got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	if err := mc.Get(context.Background(), "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("want cache miss, got %v", err)
	}
}

func TestMemoryCacheUnsupportedDest(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", []float64{1, 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var dest []float64
	if err := mc.Get(ctx, "k", &dest); err == nil {
		t.Fatal("want error for unsupported destination")
	}

	var any interface{}
	if err := mc.Get(ctx, "k", &any); err != nil {
		t.Fatalf("get into interface: %v", err)
	}
}
