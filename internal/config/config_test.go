package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
		want ServerConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{"SECRET": "orderdesk-dev-secret"},
			want: ServerConfig{
				RunAddress:          "localhost:8080",
				BackendAddress:      "http://localhost:8081",
				PrefsPath:           "data/prefs.yaml",
				LogLevel:            "info",
				Secret:              "orderdesk-dev-secret",
				AuthCookieExpiresIn: 86400,
			},
		},
		{
			name: "flags",
			args: []string{"-a", ":9000", "-b", "http://sheets:3000", "-d", "postgres://db/orderdesk", "-l", "debug", "-s", "flag-secret"},
			want: ServerConfig{
				RunAddress:          ":9000",
				BackendAddress:      "http://sheets:3000",
				DatabaseDSN:         "postgres://db/orderdesk",
				PrefsPath:           "data/prefs.yaml",
				LogLevel:            "debug",
				Secret:              "flag-secret",
				AuthCookieExpiresIn: 86400,
			},
		},
		{
			name: "environment wins over flags",
			env: map[string]string{
				"RUN_ADDRESS":     ":7000",
				"SECRET":          "s3",
				"AUTH_COOKIE_TTL": "60",
				"PREFS_PATH":      "/var/lib/orderdesk/prefs.yaml",
			},
			args: []string{"-a", ":9000"},
			want: ServerConfig{
				RunAddress:          ":7000",
				BackendAddress:      "http://localhost:8081",
				PrefsPath:           "/var/lib/orderdesk/prefs.yaml",
				LogLevel:            "info",
				Secret:              "s3",
				AuthCookieExpiresIn: 60,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			conf, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, *conf)
		})
	}
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"RUN_ADDRESS", "BACKEND_ADDRESS", "DATABASE_URI", "PREFS_PATH", "LOG_LEVEL", "SECRET", "AUTH_COOKIE_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseRequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-a", ":9000"})
	assert.ErrorIs(t, err, ErrNoSecret)
}
