package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort string

	DatabaseURL        string
	TxTimeout          time.Duration
	LockTimeout        time.Duration
	CheckoutMaxRetries uint64
	DefaultCurrency    currency.Unit

	RedisAddr       string
	ProductCacheTTL time.Duration

	KafkaBrokers       []string
	OrderEventsTopic   string
	OutboxPollInterval time.Duration

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() (Config, error) {
	var errs []error

	cfg := Config{
		AppEnv:   getEnv("APP_ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DatabaseURL:        os.Getenv("DATABASE_URL"),
		TxTimeout:          getDuration("TX_TIMEOUT", 5*time.Second, &errs),
		LockTimeout:        getDuration("LOCK_TIMEOUT", 2*time.Second, &errs),
		CheckoutMaxRetries: uint64(getInt("CHECKOUT_MAX_RETRIES", 3, &errs)),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ProductCacheTTL: getDuration("PRODUCT_CACHE_TTL", time.Minute, &errs),

		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic:   getEnv("ORDER_EVENTS_TOPIC", "storefront.orders"),
		OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", time.Second, &errs),

		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 15*time.Second, &errs),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
	}

	cur, err := currency.ParseISO(getEnv("DEFAULT_CURRENCY", "RUB"))
	if err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY: %w", err))
	}
	cfg.DefaultCurrency = cur

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.TxTimeout <= 0 {
		errs = append(errs, errors.New("TX_TIMEOUT must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid non-negative integer %q", key, value))
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
