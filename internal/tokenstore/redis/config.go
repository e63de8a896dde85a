package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Profile namespaces the token pair so several identities can share one Redis
	Profile string

	// TokenTTL expires the stored pair; zero keeps it until cleared
	TokenTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     2,
		MinIdleConns: 0,
		Profile:      "default",
		TokenTTL:     0,
	}
}
