package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/lexlookup/internal/lexicon"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0 (got %d)", c.RateLimit.PerMinute)
	}
	if c.RateLimit.PerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (l *LookupConfig) validate() error {
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be >= 0 (got %v)", l.CacheTTL)
	}
	if strings.TrimSpace(l.UserAgent) == "" {
		return fmt.Errorf("user_agent must not be empty")
	}

	u, err := url.Parse(l.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL (got %q)", l.APIURL)
	}

	if _, err := lexicon.LanguageByName(l.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}

	return nil
}
