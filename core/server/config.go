package server

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// PlanCacheSeconds is how long a computed plan is served before both
	// sides are reloaded. Zero disables caching.
	PlanCacheSeconds int `mapstructure:"plan_cache_seconds" default:"60"`
}

// Validate checks the port and cache settings.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", c.Port)
	}
	if c.PlanCacheSeconds < 0 {
		return fmt.Errorf("plan cache seconds must not be negative")
	}
	return nil
}

// PlanCacheTTL returns the plan cache lifetime.
func (c Config) PlanCacheTTL() time.Duration {
	return time.Duration(c.PlanCacheSeconds) * time.Second
}
