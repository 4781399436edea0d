package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Rate is a request quota per window, parsed from strings like "60/minute".
type Rate struct {
	Limit  int
	Window time.Duration
}

func (r Rate) String() string {
	return fmt.Sprintf("%d/%s", r.Limit, r.Window)
}

type Config struct {
	Environment string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// JWT
	JWTSecret       string
	JWTAlgorithm    string
	JWTAccessExpiry time.Duration

	// Static API key and admin login
	APIKey            string
	AdminUsername     string
	AdminPasswordHash string
	AdminPassword     string

	// Rate limiting
	DefaultRate    Rate
	InfoRate       Rate
	HealthRate     Rate
	RateLimitStore string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Uploads
	UploadBackend string
	UploadDir     string
	GCSBucket     string

	// Logging
	LogLevel         string
	LogRetentionDays int

	// Server
	Host        string
	Port        string
	CORSOrigins string
	SentryDSN   string
}

func Load() *Config {
	return &Config{
		Environment: strings.ToLower(getEnv("APP_ENV", getEnv("ENVIRONMENT", EnvDevelopment))),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "medicine_user"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "medicine_tracker_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", getEnv("SECRET_KEY", "")),
		JWTAlgorithm:    strings.ToUpper(getEnv("JWT_ALGORITHM", getEnv("ALGORITHM", "HS256"))),
		JWTAccessExpiry: accessExpiry(),

		APIKey:            getEnv("API_KEY", ""),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),

		DefaultRate:    parseRateOr(getEnv("RATE_LIMIT_PER_MINUTE", "60/minute"), Rate{Limit: 60, Window: time.Minute}),
		InfoRate:       parseRateOr(getEnv("RATE_LIMIT_INFO", "10/minute"), Rate{Limit: 10, Window: time.Minute}),
		HealthRate:     parseRateOr(getEnv("RATE_LIMIT_HEALTH", "20/minute"), Rate{Limit: 20, Window: time.Minute}),
		RateLimitStore: strings.ToLower(getEnv("RATE_LIMIT_STORE", "memory")),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        parseInt(getEnv("REDIS_DB", "0"), 0),

		UploadBackend: strings.ToLower(getEnv("UPLOAD_BACKEND", "local")),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		GCSBucket:     getEnv("GCS_BUCKET", ""),

		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}
}

// Validate reports configuration that must stop the server from starting.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported, use HS256, HS384 or HS512", c.JWTAlgorithm))
	}
	if c.JWTAccessExpiry <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_EXPIRY must be positive"))
	}
	switch c.RateLimitStore {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_STORE %q is not supported, use memory or redis", c.RateLimitStore))
	}
	switch c.UploadBackend {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required when UPLOAD_BACKEND=gcs"))
		}
	default:
		errs = append(errs, fmt.Errorf("UPLOAD_BACKEND %q is not supported, use local or gcs", c.UploadBackend))
	}
	if c.IsProduction() {
		if c.APIKey == "" {
			errs = append(errs, errors.New("API_KEY is required in production"))
		}
		if strings.TrimSpace(c.CORSOrigins) == "*" {
			errs = append(errs, errors.New("CORS_ORIGINS must list explicit origins in production"))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// StrictCORS is true outside development.
func (c *Config) StrictCORS() bool {
	return c.Environment != EnvDevelopment
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// ParseRate accepts "N", "N/second", "N/minute" or "N/hour".
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	count, unit, found := strings.Cut(s, "/")
	limit, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || limit <= 0 {
		return Rate{}, fmt.Errorf("invalid rate %q", s)
	}
	if !found {
		return Rate{Limit: limit, Window: time.Minute}, nil
	}

	var window time.Duration
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "second", "s":
		window = time.Second
	case "minute", "m", "min":
		window = time.Minute
	case "hour", "h":
		window = time.Hour
	default:
		return Rate{}, fmt.Errorf("invalid rate unit in %q", s)
	}
	return Rate{Limit: limit, Window: window}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// accessExpiry prefers JWT_ACCESS_EXPIRY and falls back to the older
// ACCESS_TOKEN_EXPIRE_MINUTES.
func accessExpiry() time.Duration {
	if v := os.Getenv("JWT_ACCESS_EXPIRY"); v != "" {
		return parseDuration(v, 30*time.Minute)
	}
	if minutes := parseInt(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"), 0); minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	return 30 * time.Minute
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseRateOr(s string, fallback Rate) Rate {
	r, err := ParseRate(s)
	if err != nil {
		return fallback
	}
	return r
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
