package config

import (
	"fmt"
	"net/url"
	"time"
)

// LookupConfig configures the third-party address and company registry lookups.
type LookupConfig struct {
	// ViaCEPBaseURL resolves postal codes: GET {base}/ws/{cep}/json/.
	ViaCEPBaseURL string `koanf:"viacep_base_url"`

	// BrasilAPIBaseURL resolves company identity: GET {base}/api/cnpj/v1/{cnpj}.
	BrasilAPIBaseURL string `koanf:"brasilapi_base_url"`

	// Timeout bounds a single lookup round trip.
	Timeout time.Duration `koanf:"timeout"`

	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerOpenFor is how long the breaker stays open before a trial request.
	BreakerOpenFor time.Duration `koanf:"breaker_open_for"`

	// CacheTTL is how long successful lookups are cached in Redis.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RatePerSecond and RateBurst throttle lookups per tenant. Idle limiters
	// are dropped after RateWindow.
	RatePerSecond float64       `koanf:"rate_per_second"`
	RateBurst     int           `koanf:"rate_burst"`
	RateWindow    time.Duration `koanf:"rate_window"`
}

// DefaultLookupConfig points at the public ViaCEP and BrasilAPI endpoints.
func DefaultLookupConfig() *LookupConfig {
	return &LookupConfig{
		ViaCEPBaseURL:    "https://viacep.com.br",
		BrasilAPIBaseURL: "https://brasilapi.com.br",
		Timeout:          8 * time.Second,
		BreakerFailures:  5,
		BreakerOpenFor:   30 * time.Second,
		CacheTTL:         24 * time.Hour,
		RatePerSecond:    2,
		RateBurst:        10,
		RateWindow:       3 * time.Minute,
	}
}

// Validate checks that both base URLs parse and that durations are usable.
// Zero durations and thresholds are replaced by defaults.
func (c *LookupConfig) Validate() error {
	defaults := DefaultLookupConfig()

	if c.ViaCEPBaseURL == "" {
		c.ViaCEPBaseURL = defaults.ViaCEPBaseURL
	}
	if c.BrasilAPIBaseURL == "" {
		c.BrasilAPIBaseURL = defaults.BrasilAPIBaseURL
	}

	for name, raw := range map[string]string{
		"viacep_base_url":    c.ViaCEPBaseURL,
		"brasilapi_base_url": c.BrasilAPIBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("lookup %s must be an absolute URL, got %q", name, raw)
		}
	}

	if c.Timeout < 0 || c.BreakerOpenFor < 0 || c.CacheTTL < 0 || c.RateWindow < 0 {
		return fmt.Errorf("lookup durations must be non-negative")
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.BreakerOpenFor == 0 {
		c.BreakerOpenFor = defaults.BreakerOpenFor
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaults.CacheTTL
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = defaults.BreakerFailures
	}
	if c.RatePerSecond < 0 || c.RateBurst < 0 {
		return fmt.Errorf("lookup rate limits must be non-negative")
	}
	if c.RatePerSecond == 0 {
		c.RatePerSecond = defaults.RatePerSecond
	}
	if c.RateBurst == 0 {
		c.RateBurst = defaults.RateBurst
	}
	if c.RateWindow == 0 {
		c.RateWindow = defaults.RateWindow
	}

	return nil
}
