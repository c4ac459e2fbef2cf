package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Telegram
	TelegramBotToken string

	// Gemini. Multiple keys are rotated round-robin across calls.
	GeminiAPIKeys []string
	GeminiModel   string

	// Calendar. All day/week/month bucketing happens in a single fixed
	// UTC offset (default +7, Asia/Jakarta, no DST).
	TimezoneOffsetHours int

	// Daily quotas
	ChatQuotaLimit    int
	ReceiptQuotaLimit int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "catatuang"),
		DBPassword: getEnv("DB_PASSWORD", "catatuang"),
		DBName:     getEnv("DB_NAME", "catatuang"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Telegram
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		// Gemini
		GeminiAPIKeys: splitKeys(getEnv("GEMINI_API_KEYS", "")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		TimezoneOffsetHours: getEnvInt("TIMEZONE_OFFSET_HOURS", 7),
		ChatQuotaLimit:      getEnvInt("CHAT_QUOTA_LIMIT", 100),
		ReceiptQuotaLimit:   getEnvInt("RECEIPT_QUOTA_LIMIT", 3),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func splitKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
