package shipping

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/craftroot/checkout-api/internal/cache"
	"github.com/craftroot/checkout-api/internal/pricing"
)

// ErrNotConfigured is returned when a delivery region has no shipping rules.
// Checkout fails closed on it rather than silently charging zero.
var ErrNotConfigured = errors.New("shipping not configured for region")

// Store fetches per-region shipping configuration.
type Store interface {
	GetShippingConfig(ctx context.Context, region string) (pricing.ShippingConfig, bool, error)
}

// Service resolves region shipping rules with an in-process TTL cache in
// front of a shared redis cache in front of the store. Both caches are
// optional; lookups fall through to the store.
type Service struct {
	Store  Store
	Local  *cache.TTL[pricing.ShippingConfig]
	Shared *cache.Redis
	Logger *zerolog.Logger
}

// ConfigForRegion returns the shipping rules for a delivery region.
func (s *Service) ConfigForRegion(ctx context.Context, region string) (pricing.ShippingConfig, error) {
	if s == nil || s.Store == nil {
		return pricing.ShippingConfig{}, errors.New("shipping: store not configured")
	}
	key := cacheKey(region)

	if cfg, ok := s.Local.Get(key); ok {
		return cfg, nil
	}
	var cfg pricing.ShippingConfig
	if hit, err := s.Shared.GetJSON(ctx, key, &cfg); err != nil {
		if s.Logger != nil {
			s.Logger.Warn().Err(err).Str("region", region).Msg("shipping cache read failed")
		}
	} else if hit {
		s.Local.Set(key, cfg)
		return cfg, nil
	}

	cfg, found, err := s.Store.GetShippingConfig(ctx, region)
	if err != nil {
		return pricing.ShippingConfig{}, err
	}
	if !found {
		return pricing.ShippingConfig{}, ErrNotConfigured
	}
	s.Local.Set(key, cfg)
	if err := s.Shared.SetJSON(ctx, key, cfg); err != nil && s.Logger != nil {
		s.Logger.Warn().Err(err).Str("region", region).Msg("shipping cache write failed")
	}
	return cfg, nil
}

func cacheKey(region string) string {
	return "shipping:config:" + strings.ToLower(strings.TrimSpace(region))
}
