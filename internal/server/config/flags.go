package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-d string     PostgreSQL DSN, or "memory"
//	-s string     JWT HMAC secret key
//	-t duration   access token lifetime (e.g. "24h")
//	-b int        bcrypt cost
//	-m string     login mode: email_or_username | email
//	-l string     log level
//	-r string     Redis URL for the token deny list
//	-o string     comma-separated CORS origins
//	-w duration   graceful shutdown timeout
//
// Arguments are filtered through flagx.FilterArgs first so that -c and any
// flags owned by other components are ignored.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-b", "-m", "-l", "-r", "-o", "-w"})

	fs := flag.NewFlagSet("mdd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenLifetime, "t", config.TokenLifetime, "access token lifetime")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LoginMode, "m", config.LoginMode, "login mode")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "CORS origins")
	fs.DurationVar(&config.ShutdownTimeout, "w", config.ShutdownTimeout, "shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	config.CORSOrigins = splitList(*origins)
	return nil
}
