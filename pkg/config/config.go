package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	// JWTSecret enables bearer authentication on the API when non-empty
	JWTSecret string
	// Security configuration
	AllowedOrigins  string
	TrustedProxies  string
	EnableRateLimit bool
	RateLimitPerMin int
	MaxRequestSize  int64
	// Classification limits
	MaxBatchRows    int
	PreviewRows     int
	ClassifyWorkers int
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", ""),
		TrustedProxies:  getEnv("TRUSTED_PROXIES", ""),
		EnableRateLimit: getEnv("ENABLE_RATE_LIMIT", "true") == "true",
		RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
		MaxRequestSize:  getEnvAsInt64("MAX_REQUEST_SIZE", 10*1024*1024), // 10MB default
		MaxBatchRows:    getEnvAsInt("MAX_BATCH_ROWS", 10000),
		PreviewRows:     getEnvAsInt("PREVIEW_ROWS", 10),
		ClassifyWorkers: getEnvAsInt("CLASSIFY_WORKERS", 1),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled returns true if API requests must carry a bearer token
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	return splitList(c.AllowedOrigins)
}

// GetTrustedProxies returns a slice of trusted proxy IPs
func (c *Config) GetTrustedProxies() []string {
	if c.TrustedProxies == "" {
		return []string{} // No trusted proxies by default
	}
	return splitList(c.TrustedProxies)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
