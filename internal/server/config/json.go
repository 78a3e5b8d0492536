package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mdd/internal/flagx"
	"github.com/dmitrijs2005/mdd/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only fields present in
// the file override the current values.
type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	DatabaseDSN     *string         `json:"database_dsn"`
	SecretKey       *string         `json:"secret_key"`
	TokenLifetime   *timex.Duration `json:"token_lifetime"`
	BcryptCost      *int            `json:"bcrypt_cost"`
	LoginMode       *string         `json:"login_mode"`
	LogLevel        *string         `json:"log_level"`
	RedisURL        *string         `json:"redis_url"`
	CORSOrigins     []string        `json:"cors_origins"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LoginMode, c.LoginMode)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.RedisURL, c.RedisURL)
	if c.TokenLifetime != nil {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
