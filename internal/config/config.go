package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	AMQPURL           string
	NotificationQueue string
	PaymentQueue      string
	AnalyticsQueue    string

	// MultiHerdEnabled toggles the multiple-herds journey globally.
	// MultiHerdGoLive is the first visit date the journey applies to.
	MultiHerdEnabled bool
	MultiHerdGoLive  time.Time

	// PricesConfigDir is searched for the priced-configuration document.
	PricesConfigDir string
}

const defaultMultiHerdGoLive = "2025-05-01"

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "stockclaims"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "stockclaims"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		AMQPURL:           getenv("AMQP_URL", ""),
		NotificationQueue: getenv("NOTIFICATION_QUEUE", "claim-notification"),
		PaymentQueue:      getenv("PAYMENT_QUEUE", "claim-payment"),
		AnalyticsQueue:    getenv("ANALYTICS_QUEUE", "claim-analytics"),
		MultiHerdEnabled:  getenvBool("MULTI_HERDS_ENABLED", true),
		MultiHerdGoLive:   getenvDate("MULTI_HERDS_GO_LIVE", defaultMultiHerdGoLive),
		PricesConfigDir:   getenv("PRICES_CONFIG_DIR", "."),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDate(key, def string) time.Time {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = def
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		parsed, _ = time.Parse("2006-01-02", def)
	}
	return parsed.UTC()
}
