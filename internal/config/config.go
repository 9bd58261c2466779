package config

import (
	"errors"
	"flag"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
)

/*
address to listen on: RUN_ADDRESS or -a;
order service base URL: BACKEND_ADDRESS or -b;
PostgreSQL DSN for preferences: DATABASE_URI or -d (empty keeps preferences in a YAML file);
preferences file: PREFS_PATH or -p;
log level: LOG_LEVEL or -l;
session signing secret: SECRET or -s, required.
*/

var ErrNoSecret = errors.New("session secret is not set, use SECRET or -s")

type ServerConfig struct {
	RunAddress          string `env:"RUN_ADDRESS"`
	BackendAddress      string `env:"BACKEND_ADDRESS"`
	DatabaseDSN         string `env:"DATABASE_URI"`
	PrefsPath           string `env:"PREFS_PATH"`
	LogLevel            string `env:"LOG_LEVEL"`
	Secret              string `env:"SECRET"`
	AuthCookieExpiresIn int    `env:"AUTH_COOKIE_TTL" envDefault:"86400"`
}

// NewConfig reads .env (when present), then the environment, then falls back
// to command line flags for anything unset.
func NewConfig() (*ServerConfig, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Could not read .env: %v", err)
	}

	var params ServerConfig
	err := env.Parse(&params)
	if err != nil {
		return nil, err
	}

	var commandLineParams ServerConfig

	fs.StringVar(&commandLineParams.RunAddress, "a", "localhost:8080", "Base address to listen on")
	fs.StringVar(&commandLineParams.BackendAddress, "b", "http://localhost:8081", "Order service address")
	fs.StringVar(&commandLineParams.DatabaseDSN, "d", "", "Database DSN for preferences")
	fs.StringVar(&commandLineParams.PrefsPath, "p", "data/prefs.yaml", "Preferences file, used without a database")
	fs.StringVar(&commandLineParams.LogLevel, "l", "info", "Log level")
	fs.StringVar(&commandLineParams.Secret, "s", "", "Secret signing session cookies")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if params.RunAddress == "" {
		params.RunAddress = commandLineParams.RunAddress
	}
	if params.BackendAddress == "" {
		params.BackendAddress = commandLineParams.BackendAddress
	}
	if params.DatabaseDSN == "" {
		params.DatabaseDSN = commandLineParams.DatabaseDSN
	}
	if params.PrefsPath == "" {
		params.PrefsPath = commandLineParams.PrefsPath
	}
	if params.LogLevel == "" {
		params.LogLevel = commandLineParams.LogLevel
	}
	if params.Secret == "" {
		params.Secret = commandLineParams.Secret
	}
	if params.Secret == "" {
		return nil, ErrNoSecret
	}

	return &params, nil
}
