package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcoot/whoosh/internal/client"
	"github.com/mcoot/whoosh/internal/factory"
	redisstore "github.com/mcoot/whoosh/internal/tokenstore/redis"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	APIBase    string
	TokenStore string
	TokenFile  string
	RedisURL   string
	Profile    string
	Timeout    time.Duration
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with values from the environment or defaults
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("WHOOSH_SERVER", "http://localhost:8000"),
		APIBase:    getEnvOrDefault("WHOOSH_API_BASE", "/api"),
		TokenStore: getEnvOrDefault("WHOOSH_TOKEN_STORE", factory.StoreTypeFile),
		TokenFile:  getEnvOrDefault("WHOOSH_TOKEN_FILE", defaultTokenFile()),
		RedisURL:   getEnvOrDefault("WHOOSH_REDIS_URL", redisstore.DefaultConfig().URL),
		Profile:    getEnvOrDefault("WHOOSH_PROFILE", redisstore.DefaultConfig().Profile),
		Timeout:    getDurationOrDefault("WHOOSH_TIMEOUT", client.DefaultConfig().Timeout),
		Output:     "text",
		Verbose:    false,
	}
}

// BaseURL joins the server URL and the API base path
func (c *Config) BaseURL() string {
	return strings.TrimSuffix(c.ServerURL, "/") + "/" + strings.Trim(c.APIBase, "/")
}

// FactoryConfig translates the CLI settings for the application factory
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	redisCfg := redisstore.DefaultConfig()
	redisCfg.URL = c.RedisURL
	redisCfg.Profile = c.Profile

	tokenFile := c.TokenFile
	if c.Profile != "" && c.Profile != redisstore.DefaultConfig().Profile {
		tokenFile = profileTokenFile(tokenFile, c.Profile)
	}

	return factory.Config{
		StoreType:   c.TokenStore,
		TokenFile:   tokenFile,
		RedisConfig: &redisCfg,
		ClientConfig: client.Config{
			BaseURL: c.BaseURL(),
			Timeout: c.Timeout,
		},
		Logger: logger,
	}
}

// profileTokenFile derives a per-profile token file, e.g. tokens.work.json
func profileTokenFile(path, profile string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + profile + ext
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".whoosh", "tokens.json")
	}
	return filepath.Join(home, ".whoosh", "tokens.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
