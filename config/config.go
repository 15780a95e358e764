package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const OrdersTopic = "orders"

// Storefront holds the settings of storefront-svc.
type Storefront struct {
	Port               string
	CatalogPath        string
	DeliveryFee        decimal.Decimal
	TaxRate            decimal.Decimal
	QRBaseURL          string
	CartTTL            time.Duration
	CheckoutRatePerMin int
	TrustedProxies     []string
}

// LoadEnv reads an optional .env file. Variables already set in the
// environment win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded, using environment variables")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func LoadStorefront() Storefront {
	return Storefront{
		Port:               GetEnv("PORT", "8081"),
		CatalogPath:        GetEnv("CATALOG_PATH", "catalog.yaml"),
		DeliveryFee:        getDecimal("DELIVERY_FEE", "5.00"),
		TaxRate:            getDecimal("TAX_RATE", "0.08"),
		QRBaseURL:          GetEnv("QR_BASE_URL", "http://localhost:8080"),
		CartTTL:            getDuration("CART_TTL", 24*time.Hour),
		CheckoutRatePerMin: getInt("CHECKOUT_RATE_PER_MIN", 5),
		TrustedProxies:     getList("TRUSTED_PROXIES", "127.0.0.1,::1"),
	}
}

func getDecimal(key, defaultValue string) decimal.Decimal {
	raw := GetEnv(key, defaultValue)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("WARNING: invalid %s=%q, using %s", key, raw, defaultValue)
		return decimal.RequireFromString(defaultValue)
	}
	return d
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("WARNING: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("WARNING: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(GetEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func MustInitPostgres() *sql.DB {
	connStr := "host=" + GetEnv("DB_HOST", "localhost") + " port=" + GetEnv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + GetEnv("DB_NAME", "storefront") + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{GetEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter partitions by message key, so every event of one order is
// read in the order it was written.
func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(GetEnv("KAFKA_BROKER", "localhost:9092")),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}
