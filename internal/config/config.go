package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	HTTPAddr       string
	DBConnStr      string
	JWTSecret      string
	PriceAPIURL    string // Empty selects the public CoinGecko endpoint
	TrackedSymbols []string
	RefreshSpec    string // Cron spec for the quote cache refresher
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		HTTPAddr:       ":" + getEnv("PORT", "8080"),
		DBConnStr:      dbConnStr(),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
		PriceAPIURL:    getEnv("PRICE_API_URL", ""),
		TrackedSymbols: splitList(getEnv("TRACKED_SYMBOLS", "")),
		RefreshSpec:    getEnv("QUOTE_REFRESH_SPEC", "@every 1m"),
	}
}

// dbConnStr returns DB_CONN_STR when set, otherwise builds the
// connection string from individual vars (Docker friendly)
func dbConnStr() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "cryptofolio")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
