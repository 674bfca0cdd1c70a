package config

import (
	"os"
	"time"
)

// Environment variable names recognized by parseEnv.
const (
	EnvEndpointAddr    = "VAULTCORE_ADDRESS"
	EnvDatabaseDSN     = "DATABASE_DSN"
	EnvSecretKey       = "JWT_SECRET_KEY"
	EnvAccessTokenTTL  = "ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL = "REFRESH_TOKEN_TTL"
)

// parseEnv overlays configuration from the process environment. TTLs use
// time.ParseDuration syntax ("30m", "72h"); unparsable values are ignored
// rather than guessed at.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(EnvEndpointAddr); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvAccessTokenTTL); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenTTL = d
		}
	}
	if v, ok := os.LookupEnv(EnvRefreshTokenTTL); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenTTL = d
		}
	}
}
