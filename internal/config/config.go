package config

import (
	"log"
	"os"
	"strconv"
)

type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int
	IdleTimeout  int
}

type Config struct {
	Server ServerConfig
	// APIBaseURL is where the gestion-formation REST API lives; every piece
	// of domain data comes from there.
	APIBaseURL string
	// DatabaseDSN selects the session store: sqlite path by default,
	// postgres when given a postgres DSN.
	DatabaseDSN string
	CSRFKey     string
	Dev         bool
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("IDLE_TIMEOUT", 60),
		},
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8081/api"),
		DatabaseDSN: getEnv("DATABASE_DSN", "sessions.db"),
		CSRFKey:     getEnv("CSRF_KEY", "32-byte-long-auth-key-dev-only!!"),
		Dev:         ParseBool("DEV", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
