package magickit

import (
	"testing"
	"time"
)

func TestMemoryCacheBasic(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache returned a value")
	}

	c.Set("k", "v", 0)
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("value survived Delete")
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache()

	c.Set("short", 1, time.Millisecond)
	c.Set("long", 2, time.Hour)
	c.Set("forever", 3, 0)

	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired value still returned")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("unexpired value missing")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("no-TTL value missing")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("value survived Clear")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("value survived Clear")
	}
}
