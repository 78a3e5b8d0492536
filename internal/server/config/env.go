package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by parseEnv.
const (
	envHTTPAddr        = "MDD_HTTP_ADDR"
	envDatabaseDSN     = "MDD_DATABASE_DSN"
	envSecretKey       = "MDD_JWT_SECRET"
	envTokenLifetime   = "MDD_TOKEN_LIFETIME"
	envBcryptCost      = "MDD_BCRYPT_COST"
	envLoginMode       = "MDD_LOGIN_MODE"
	envLogLevel        = "MDD_LOG_LEVEL"
	envRedisURL        = "MDD_REDIS_URL"
	envCORSOrigins     = "MDD_CORS_ORIGINS"
	envShutdownTimeout = "MDD_SHUTDOWN_TIMEOUT"
)

func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := lookup(name)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
		return nil
	}

	str(envHTTPAddr, &config.HTTPAddr)
	str(envDatabaseDSN, &config.DatabaseDSN)
	str(envSecretKey, &config.SecretKey)
	str(envLoginMode, &config.LoginMode)
	str(envLogLevel, &config.LogLevel)
	str(envRedisURL, &config.RedisURL)

	if err := dur(envTokenLifetime, &config.TokenLifetime); err != nil {
		return err
	}
	if err := dur(envShutdownTimeout, &config.ShutdownTimeout); err != nil {
		return err
	}
	if v, ok := lookup(envBcryptCost); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envBcryptCost, err)
		}
		config.BcryptCost = n
	}
	if v, ok := lookup(envCORSOrigins); ok {
		config.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
