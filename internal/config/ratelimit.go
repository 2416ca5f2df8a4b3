package config

import (
	"os"
	"time"
)

// RateLimitConfig controls the Redis token-bucket limiter applied in
// front of the API.  Keys are scoped per client IP and route so one
// noisy POS terminal cannot starve the rest.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // bucket size (burst)
	RefillTokens   int           // tokens added per interval
	RefillInterval time.Duration // refill cadence
	TTL            time.Duration // bucket key expiry in Redis
	Prefix         string        // key namespace
}

// LoadRateLimitConfig builds a RateLimitConfig from the environment,
// clamping nonsensical values to workable minimums.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiOr("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   atoiOr("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
		TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// The bucket key must outlive several refill intervals or state resets.
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func atoiOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n := atoi(v); n != 0 {
			return n
		}
	}
	return def
}
