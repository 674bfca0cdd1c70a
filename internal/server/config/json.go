package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vaultcore/api/internal/flagx"
	"github.com/vaultcore/api/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for the TTL fields, which parses both string values
// such as "30m" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl"`
}

// parseJson loads configuration from the JSON file named by the -c or
// -config flags. When neither flag is set, nothing is loaded. An unreadable
// or invalid file panics: a config file that was asked for but cannot be
// used should stop startup.
//
// Only fields present in the file override the current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenTTL.Duration != 0 {
		config.AccessTokenTTL = time.Duration(c.AccessTokenTTL.Duration)
	}
	if c.RefreshTokenTTL.Duration != 0 {
		config.RefreshTokenTTL = time.Duration(c.RefreshTokenTTL.Duration)
	}
}
