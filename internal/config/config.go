package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the care server.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	AllowedOrigin  string
	ThrottlePath   string // file backing the notification throttle state
	ScanEveryMins  int    // cadence of the reposition due scan
	DueSoonMins    int    // "due soon" horizon for notifications
	NotifyCooldown int    // minutes between repeat notifications per resident/status
}

// LoadConfig reads configuration from a .env file and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "elder_care"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		ThrottlePath:   getEnv("THROTTLE_STATE_PATH", "throttle_state.json"),
		ScanEveryMins:  getEnvInt("SCAN_EVERY_MINS", 1),
		DueSoonMins:    getEnvInt("DUE_SOON_MINS", 5),
		NotifyCooldown: getEnvInt("NOTIFY_COOLDOWN_MINS", 15),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}
