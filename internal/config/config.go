package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings loaded from the environment.
type Config struct {
	HTTPAddr    string
	RedisAddr   string
	KafkaBroker string

	// Scraping knobs.
	MaxProductsPerPlatform int
	ScrapeTimeout          time.Duration
	MaxConcurrency         int
	RateLimitMs            int
	MaxRetries             int
	ChromeBin              string

	// Scrape-result cache.
	CacheTTL time.Duration
}

// Load reads the .env file (if present) and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		HTTPAddr:    getEnv("SMARTPRICE_HTTP_ADDR", ":8080"),
		RedisAddr:   getEnv("REDIS_ADDR", "redis:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "kafka:9092"),

		MaxProductsPerPlatform: getEnvInt("MAX_PRODUCTS_PER_PLATFORM", 5),
		ScrapeTimeout:          time.Duration(getEnvInt("SCRAPE_TIMEOUT_SEC", 90)) * time.Second,
		MaxConcurrency:         getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:            getEnvInt("RATE_LIMIT_MS", 1500),
		MaxRetries:             getEnvInt("MAX_RETRIES", 3),
		ChromeBin:              getEnv("CHROME_BIN", ""),

		CacheTTL: time.Duration(getEnvInt("SCRAPE_CACHE_TTL_SEC", 600)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
