package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, shared by the API server and the
// data pipeline CLIs.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// AdminToken is the shared secret required by admin endpoints
	// (X-Admin-Token header, exact string match).
	AdminToken string

	// RedisURL, when non-empty, switches the store from the JSON file to Redis.
	RedisURL string

	// DBFile is the JSON-file store path used when RedisURL is empty.
	DBFile string

	// DatasetFile is where the linkage run writes universities.json and where
	// the server serves it from.
	DatasetFile string

	SocrataBaseURL      string
	DatasetInstitutions string
	DatasetPrograms     string
	FetchPageSize       int
	FetchDelay          time.Duration

	SenaBaseURL string

	// AllowedOrigins controls HTTP CORS. Empty slice means all origins are
	// permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "5174"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "pretty"),
		AdminToken:          getEnv("ADMIN_TOKEN", "admin-demo"),
		RedisURL:            getEnv("REDIS_URL", ""),
		DBFile:              getEnv("DB_FILE", "data/db.json"),
		DatasetFile:         getEnv("DATASET_FILE", "data/universities.json"),
		SocrataBaseURL:      getEnv("SOCRATA_BASE_URL", "https://www.datos.gov.co/resource"),
		DatasetInstitutions: getEnv("DATASET_INSTITUTIONS", "n5yy-8nav"),
		DatasetPrograms:     getEnv("DATASET_PROGRAMS", "upr9-nkiz"),
		FetchPageSize:       getEnvInt("FETCH_PAGE_SIZE", 50000),
		FetchDelay:          time.Duration(getEnvInt("FETCH_DELAY_MS", 250)) * time.Millisecond,
		SenaBaseURL:         getEnv("SENA_BASE_URL", "https://betowa.sena.edu.co/oferta"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
