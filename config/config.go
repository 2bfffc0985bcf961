package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	Port     string
	LogLevel string
	// Store selection
	StoreBackend             string
	DBUrl                    string
	DBAutoMigrate            bool
	StoreTimeout             time.Duration
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	// Auth (Firebase ID tokens)
	FirebaseProjectID string
	AuthJWKSURL       string
	AuthDevSecret     string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	FavoritesCacheTTL    time.Duration
	// Feed
	FeedDefaultPageSize    int
	FeedMaxPageSize        int
	FeedRequireAuthForMore bool
	CategoriesFile         string
	// Rate Limiting Configuration
	RateLimitWindowSeconds     int
	RateLimitGlobalThreshold   int
	RateLimitFavoriteThreshold int
	// CORS
	FrontendURLs    []string
	AllowDevOrigins bool
}

func LoadConfig() (*Config, error) {
	// .env is optional; production sets real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend:             strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		DBUrl:                    getEnv("DATABASE_URL", ""),
		DBAutoMigrate:            getEnvBool("DB_AUTO_MIGRATE", true),
		StoreTimeout:             getEnvDuration("STORE_TIMEOUT", 20*time.Second),
		FirestoreProjectID:       getEnv("FIRESTORE_PROJECT_ID", getEnv("FIREBASE_PROJECT_ID", "")),
		FirestoreCredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),

		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		AuthJWKSURL:       getEnv("AUTH_JWKS_URL", ""),
		AuthDevSecret:     getEnv("AUTH_DEV_SECRET", ""),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		FavoritesCacheTTL:    getEnvDuration("FAVORITES_CACHE_TTL", 24*time.Hour),

		FeedDefaultPageSize:    getEnvInt("FEED_DEFAULT_PAGE_SIZE", 10),
		FeedMaxPageSize:        getEnvInt("FEED_MAX_PAGE_SIZE", 50),
		FeedRequireAuthForMore: getEnvBool("FEED_REQUIRE_AUTH_FOR_MORE", true),
		CategoriesFile:         getEnv("CATEGORIES_FILE", ""),

		RateLimitWindowSeconds:     getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:   getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitFavoriteThreshold: getEnvInt("RATE_LIMIT_FAVORITE_THRESHOLD", 30),

		FrontendURLs:    splitList(getEnv("FRONTEND_URL", "http://localhost:3000")),
		AllowDevOrigins: os.Getenv("GIN_MODE") != "release",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=%s", BackendPostgres)
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORE_BACKEND=%s", BackendFirestore)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.FirebaseProjectID == "" && c.AuthDevSecret == "" {
		return fmt.Errorf("either FIREBASE_PROJECT_ID or AUTH_DEV_SECRET must be set")
	}
	if c.FeedDefaultPageSize < 1 || c.FeedMaxPageSize < c.FeedDefaultPageSize {
		return fmt.Errorf("invalid feed page sizes: default=%d max=%d", c.FeedDefaultPageSize, c.FeedMaxPageSize)
	}
	return nil
}

// RateLimitWindow is the shared rate limit window.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
