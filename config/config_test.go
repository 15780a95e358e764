package config

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestLoadStorefront_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CATALOG_PATH", "DELIVERY_FEE", "TAX_RATE", "QR_BASE_URL", "CART_TTL", "CHECKOUT_RATE_PER_MIN", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}

	cfg := LoadStorefront()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "5.00", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, "0.08", cfg.TaxRate.StringFixed(2))
	assert.Equal(t, 24*time.Hour, cfg.CartTTL)
	assert.Equal(t, 5, cfg.CheckoutRatePerMin)
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.TrustedProxies)
}

func TestLoadStorefront_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DELIVERY_FEE", "3.5")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("CART_TTL", "2h")
	t.Setenv("CHECKOUT_RATE_PER_MIN", "30")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.5, 10.0.0.6,")

	cfg := LoadStorefront()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "3.50", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, "0.10", cfg.TaxRate.StringFixed(2))
	assert.Equal(t, 2*time.Hour, cfg.CartTTL)
	assert.Equal(t, 30, cfg.CheckoutRatePerMin)
	assert.Equal(t, []string{"10.0.0.5", "10.0.0.6"}, cfg.TrustedProxies)
}

func TestLoadStorefront_InvalidFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg Storefront)
	}{
		{
			name: "negative fee", key: "DELIVERY_FEE", value: "-1",
			check: func(t *testing.T, cfg Storefront) { assert.Equal(t, "5.00", cfg.DeliveryFee.StringFixed(2)) },
		},
		{
			name: "garbage rate", key: "TAX_RATE", value: "eight percent",
			check: func(t *testing.T, cfg Storefront) { assert.Equal(t, "0.08", cfg.TaxRate.StringFixed(2)) },
		},
		{
			name: "bad ttl", key: "CART_TTL", value: "tomorrow",
			check: func(t *testing.T, cfg Storefront) { assert.Equal(t, 24*time.Hour, cfg.CartTTL) },
		},
		{
			name: "zero rate limit", key: "CHECKOUT_RATE_PER_MIN", value: "0",
			check: func(t *testing.T, cfg Storefront) { assert.Equal(t, 5, cfg.CheckoutRatePerMin) },
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testCase.key, testCase.value)
			testCase.check(t, LoadStorefront())
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("STOREFRONT_TEST_KEY", "default"))
	assert.Equal(t, "default", GetEnv("STOREFRONT_TEST_MISSING", "default"))
}

func TestNewKafkaWriter_PartitionsByKey(t *testing.T) {
	writer := NewKafkaWriter(OrdersTopic)
	defer writer.Close()

	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
	assert.Equal(t, OrdersTopic, writer.Topic)
}
