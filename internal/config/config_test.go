package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_DATABASE_URL", "postgres://u:p@localhost:5432/shop")
	t.Setenv("STOREFRONT_JWT_SECRET", "secret")

	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 10*time.Second, cfg.CheckoutTimeout)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CartRestoreOnFailure)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, currency.BRL, cfg.Currency())

	log := cfg.NewLogger()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestLoadUnprefixedFallback(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shop")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CHECKOUT_TIMEOUT", "3s")

	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/shop", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.CheckoutTimeout)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "STOREFRONT_DATABASE_URL=postgres://file@localhost/shop\n" +
		"STOREFRONT_JWT_SECRET=from-file\n" +
		"STOREFRONT_LOG_FORMAT=text\n" +
		"STOREFRONT_CART_RESTORE_ON_FAILURE=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// already set variables win over the file
	t.Setenv("STOREFRONT_JWT_SECRET", "from-env")

	t.Cleanup(func() {
		for _, key := range []string{
			"STOREFRONT_DATABASE_URL",
			"STOREFRONT_LOG_FORMAT",
			"STOREFRONT_CART_RESTORE_ON_FAILURE",
		} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file@localhost/shop", cfg.DatabaseURL)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.True(t, cfg.CartRestoreOnFailure)
	assert.IsType(t, &logrus.TextFormatter{}, cfg.NewLogger().Formatter)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing database url: error",
			env:  map[string]string{"STOREFRONT_JWT_SECRET": "secret"},
		},
		{
			name: "unknown currency: error",
			env: map[string]string{
				"STOREFRONT_DATABASE_URL":     "postgres://localhost/shop",
				"STOREFRONT_JWT_SECRET":       "secret",
				"STOREFRONT_DEFAULT_CURRENCY": "ZZZ",
			},
		},
		{
			name: "bad log format: error",
			env: map[string]string{
				"STOREFRONT_DATABASE_URL": "postgres://localhost/shop",
				"STOREFRONT_JWT_SECRET":   "secret",
				"STOREFRONT_LOG_FORMAT":   "xml",
			},
		},
		{
			name: "bad duration: error",
			env: map[string]string{
				"STOREFRONT_DATABASE_URL":    "postgres://localhost/shop",
				"STOREFRONT_JWT_SECRET":      "secret",
				"STOREFRONT_REQUEST_TIMEOUT": "soon",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load(noEnvFile(t))
			require.Error(t, err)
		})
	}
}
