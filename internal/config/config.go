package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every tunable the agent reads from the environment.
type Config struct {
	Port            string
	DataDir         string // directory containing the four input tables
	AuditLogFile    string
	GeminiAPIKey    string
	GeminiModel     string
	AITimeoutSec    int
	SalesWindowDays int
	MaxLogSizeMB    int64
	MaxLogBackups   int
	TelegramEnabled bool
}

// Load initializes the configuration.
// It tries to read a .env file and checks for necessary environment variables.
func Load() *Config {
	// Load .env variables into the process environment
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "data"),
		AuditLogFile:    getEnv("AUDIT_LOG_FILE", "audit_log.csv"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeoutSec:    getEnvAsInt("AI_TIMEOUT_SEC", 30),
		SalesWindowDays: getEnvAsInt("SALES_WINDOW_DAYS", 7),
		MaxLogSizeMB:    int64(getEnvAsInt("MAX_LOG_SIZE_MB", 10)),
		MaxLogBackups:   getEnvAsInt("MAX_LOG_BACKUPS", 3),
	}

	// The Telegram side channel is optional; both credentials or nothing.
	cfg.TelegramEnabled = os.Getenv("TELEGRAM_BOT_TOKEN") != "" && os.Getenv("TELEGRAM_CHAT_ID") != ""

	// The engine key is confidential: never print it, only whether it exists.
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set; strategy generation will fail until configured")
	} else {
		masked := "***"
		if len(cfg.GeminiAPIKey) > 4 {
			masked = "***" + cfg.GeminiAPIKey[len(cfg.GeminiAPIKey)-4:]
		}
		log.Printf("GEMINI_API_KEY=%s", masked)
	}

	return cfg
}

// getEnv gets an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
