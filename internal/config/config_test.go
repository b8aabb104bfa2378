package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost/checkout",
		"REDIS_URL":    "redis://localhost:6379",
		"HOME_REGION":  "karnataka",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %s, want 8080", cfg.Port)
	}
	if cfg.CurrencyCode != "INR" {
		t.Fatalf("currency = %s, want INR", cfg.CurrencyCode)
	}
	if cfg.ShippingCacheTTL != 5*time.Minute {
		t.Fatalf("shipping cache ttl = %s, want 5m", cfg.ShippingCacheTTL)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("addr = %s, want :8080", cfg.HTTPAddr())
	}
}

func TestLoadRequiresHomeRegion(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost/checkout",
		"REDIS_URL":    "redis://localhost:6379",
		"HOME_REGION":  "",
	})
	if err == nil {
		t.Fatal("expected error for missing HOME_REGION")
	}
}

func TestLinkedRegionsParsed(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":   "postgres://localhost/checkout",
		"REDIS_URL":      "redis://localhost:6379",
		"HOME_REGION":    "karnataka",
		"LINKED_REGIONS": "puducherry, lakshadweep ,",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.LinkedRegions) != 2 {
		t.Fatalf("linked regions = %v, want 2 entries", cfg.LinkedRegions)
	}
}
