// Package config provides configuration management for the grind calculator service.
package config

import (
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultLayerThickness is the layer thickness in centimetres used when neither
// the product nor the settings carry a positive value.
const DefaultLayerThickness = 5.0

// Config is the service configuration, read once at startup by Load.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	CartURL        string
}

// CacheConfig holds the label parse cache configuration.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// SessionConfig holds the session token and wizard state configuration.
type SessionConfig struct {
	SecretKey string
	TokenTTL  time.Duration
	StateTTL  time.Duration
}

// CatalogConfig holds catalog backend configuration.
type CatalogConfig struct {
	// Backend is one of "memory", "mongo" or "postgres".
	Backend               string
	SeedFile              string
	Timeout               time.Duration
	DefaultLayerThickness float64
	WizardCategoryIDs     []int
}

// AuthConfig holds admin authentication configuration.
// APIKeyHashes are bcrypt hashes of the admin API keys.
type AuthConfig struct {
	APIKeyHashes []string
}

// DatabaseConfig holds MongoDB and Postgres configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	PostgresDSN  string

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
			CartURL:        getEnv("CART_URL", "/winkelwagen/"),
		},
		Cache: CacheConfig{
			Size: getEnvInt("LABEL_CACHE_SIZE", 1000),
			TTL:  getEnvDuration("LABEL_CACHE_TTL", 10*time.Minute),
		},
		Session: SessionConfig{
			SecretKey: getEnv("SESSION_SECRET_KEY", "your-session-secret-change-in-production"),
			TokenTTL:  getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour),
			StateTTL:  getEnvDuration("SESSION_STATE_TTL", 24*time.Hour),
		},
		Catalog: CatalogConfig{
			Backend:               strings.ToLower(getEnv("CATALOG_BACKEND", "memory")),
			SeedFile:              getEnv("CATALOG_SEED_FILE", ""),
			Timeout:               getEnvDuration("CATALOG_TIMEOUT", 3*time.Second),
			DefaultLayerThickness: SanitizeLayerThickness(getEnvFloat("DEFAULT_LAYER_THICKNESS", DefaultLayerThickness)),
			WizardCategoryIDs:     ParseCategoryIDs(os.Getenv("WIZARD_CATEGORY_IDS")),
		},
		Auth: AuthConfig{
			APIKeyHashes: parseList(os.Getenv("ADMIN_API_KEY_HASHES")),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "grind_calculator"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			PostgresDSN:                    getEnv("POSTGRES_DSN", ""),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

// SanitizeLayerThickness replaces a non-positive thickness with DefaultLayerThickness.
func SanitizeLayerThickness(v float64) float64 {
	if v <= 0 {
		return DefaultLayerThickness
	}
	return v
}

// ParseCategoryIDs parses a comma separated list of category ids.
// Non-numeric and non-positive entries are dropped, duplicates collapse
// and the first-seen order is kept.
func ParseCategoryIDs(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	seen := make(map[int]struct{}, len(parts))
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v <= 0 {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// envOr parses key with parse and falls back to defaultValue when the
// variable is unset or malformed.
func envOr[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	parsed, err := parse(v)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	return envOr(key, defaultValue, strconv.Atoi)
}

// getEnvFloat accepts a decimal comma, as in "7,5".
func getEnvFloat(key string, defaultValue float64) float64 {
	return envOr(key, defaultValue, func(v string) (float64, error) {
		return strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	})
}

func getEnvBool(key string, defaultValue bool) bool {
	return envOr(key, defaultValue, strconv.ParseBool)
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return envOr(key, defaultValue, time.ParseDuration)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// localOrigins are always allowed so a local storefront can reach the API.
var localOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

func parseCORSOrigins(s string) []string {
	return append(slices.Clone(localOrigins), parseList(s)...)
}
