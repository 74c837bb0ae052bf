package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

const prefix = "storefront"

// Config is read from STOREFRONT_* variables; each key also falls back to its
// unprefixed name, e.g. DATABASE_URL.
type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"1m"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	RequestTimeout       time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	CheckoutTimeout      time.Duration `envconfig:"CHECKOUT_TIMEOUT" default:"10s"`
	ShutdownTimeout      time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CartRestoreOnFailure bool          `envconfig:"CART_RESTORE_ON_FAILURE" default:"false"`

	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"BRL"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file from envFiles (default ".env") and then
// the process environment. Variables already set win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("envconfig.Process: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Currency() currency.Unit {
	// validate already rejected unknown codes
	unit, _ := currency.ParseISO(c.DefaultCurrency)
	return unit
}

func (c Config) validate() error {
	if _, err := currency.ParseISO(c.DefaultCurrency); err != nil {
		return fmt.Errorf("DEFAULT_CURRENCY[%s] is not valid: %w", c.DefaultCurrency, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT[%s] must be json or text", c.LogFormat)
	}
	if c.CheckoutTimeout < 0 {
		return fmt.Errorf("CHECKOUT_TIMEOUT must not be negative")
	}

	return nil
}

func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()

	level, _ := logrus.ParseLevel(c.LogLevel)
	log.SetLevel(level)

	if c.LogFormat == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}

	return log
}
