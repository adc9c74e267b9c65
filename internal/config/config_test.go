package config_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.Equal(t, uint64(3), cfg.CheckoutMaxRetries)
	assert.Equal(t, "RUB", cfg.DefaultCurrency.String())
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")
	t.Setenv("TX_TIMEOUT", "750ms")
	t.Setenv("CHECKOUT_MAX_RETRIES", "5")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DEFAULT_CURRENCY", "EUR")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.TxTimeout)
	assert.Equal(t, uint64(5), cfg.CheckoutMaxRetries)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "EUR", cfg.DefaultCurrency.String())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TX_TIMEOUT", "soon")
	t.Setenv("CHECKOUT_MAX_RETRIES", "-1")

	_, err := config.Load()
	require.Error(t, err)

	assert.ErrorContains(t, err, "DATABASE_URL is required")
	assert.ErrorContains(t, err, "TX_TIMEOUT")
	assert.ErrorContains(t, err, "CHECKOUT_MAX_RETRIES")
}
