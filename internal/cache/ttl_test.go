package cache

import (
	"testing"
	"time"
)

func TestTTLExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	c := NewTTL[string](time.Minute, clock)

	c.Set("k", "v")
	if got, ok := c.Get("k"); !ok || got != "v" {
		t.Fatalf("Get = %q, %v; want v, true", got, ok)
	}

	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired early")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestTTLDelete(t *testing.T) {
	c := NewTTL[int](time.Minute, nil)
	c.Set("k", 42)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted entry still present")
	}
}

func TestTTLNilSafe(t *testing.T) {
	var c *TTL[int]
	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Fatal("nil cache must miss")
	}
	c.Delete("k")
}

func TestTTLZeroDisables(t *testing.T) {
	c := NewTTL[int](0, nil)
	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Fatal("zero-ttl cache must not store")
	}
}
