package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the dashboard backend reads from the environment.
type Config struct {
	HTTPAddr string

	// Remote services
	IdentityURL         string
	LoadURL             string
	UpstreamTimeout     time.Duration
	UpstreamInsecureTLS bool

	// Sessions
	RedisURL      string
	SessionSecret string
	SessionTTL    time.Duration
	WizardTTL     time.Duration
	SecureCookie  bool

	CORSOrigins []string

	// Logging
	LogFile   string
	LogLevel  string
	LogStdout bool

	DB DBConfig
}

// DBConfig describes the postgres database that backs the activity log.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", "0.0.0.0:8080"),

		IdentityURL:         strings.TrimRight(getEnv("IDENTITY_URL", "https://localhost:5000"), "/"),
		LoadURL:             strings.TrimRight(getEnv("LOAD_URL", "https://localhost:5001"), "/"),
		UpstreamTimeout:     getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		UpstreamInsecureTLS: getBool("UPSTREAM_INSECURE_TLS", false),

		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionSecret: getEnv("SESSION_SECRET", "supersecret"),
		SessionTTL:    getDuration("SESSION_TTL", 0),
		WizardTTL:     getDuration("WIZARD_TTL", 2*time.Hour),
		SecureCookie:  getBool("SECURE_COOKIE", false),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),

		LogFile:   getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogStdout: getBool("LOG_STDOUT", false),

		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "freight_admin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		},
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid duration for %s (%q), using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
