// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// UpstreamConfig provides settings for the core backend API client.
type UpstreamConfig interface {
	GetUpstreamBaseURL() string
	GetUpstreamServiceToken() string
	GetUpstreamTimeout() time.Duration
}

// RedisConfig provides the Redis connection for caching and task queues.
type RedisConfig interface {
	GetRedisURL() string
}

// CacheConfig provides read-through cache settings for upstream lists.
type CacheConfig interface {
	RedisConfig
	GetCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// WhatsAppConfig provides settings for the WhatsApp gateway.
type WhatsAppConfig interface {
	GetWhatsAppBaseURL() string
	GetWhatsAppUsername() string
	GetWhatsAppPassword() string
	IsWhatsAppEnabled() bool
}

// SMTPConfig provides settings for outbound email.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetEmailEnabled() bool
}

// SchedulerConfig provides settings for background automation.
type SchedulerConfig interface {
	RedisConfig
	GetSLACheckInterval() time.Duration
	GetDispatchInterval() time.Duration
}

// NotificationConfig provides settings for outbound notifications.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// PhoneConfig provides the default region for phone normalization.
type PhoneConfig interface {
	GetDefaultPhoneRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	JWTAccessSecret      string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	AppBaseURL           string
	UpstreamBaseURL      string
	UpstreamServiceToken string
	UpstreamTimeout      time.Duration
	RedisURL             string
	CacheTTL             time.Duration
	CacheEnabled         bool
	WhatsAppBaseURL      string
	WhatsAppUsername     string
	WhatsAppPassword     string
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailEnabled         bool
	EmailFromName        string
	EmailFromAddress     string
	SLACheckInterval     time.Duration
	DispatchInterval     time.Duration
	DefaultPhoneRegion   string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// UpstreamConfig implementation
func (c *Config) GetUpstreamBaseURL() string        { return c.UpstreamBaseURL }
func (c *Config) GetUpstreamServiceToken() string   { return c.UpstreamServiceToken }
func (c *Config) GetUpstreamTimeout() time.Duration { return c.UpstreamTimeout }

// CacheConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }
func (c *Config) IsCacheEnabled() bool       { return c.CacheEnabled && c.RedisURL != "" }

// WhatsAppConfig implementation
func (c *Config) GetWhatsAppBaseURL() string  { return c.WhatsAppBaseURL }
func (c *Config) GetWhatsAppUsername() string { return c.WhatsAppUsername }
func (c *Config) GetWhatsAppPassword() string { return c.WhatsAppPassword }
func (c *Config) IsWhatsAppEnabled() bool     { return c.WhatsAppBaseURL != "" }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }

// SchedulerConfig implementation
func (c *Config) GetSLACheckInterval() time.Duration { return c.SLACheckInterval }
func (c *Config) GetDispatchInterval() time.Duration { return c.DispatchInterval }

// NotificationConfig implementation
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// PhoneConfig implementation
func (c *Config) GetDefaultPhoneRegion() string { return c.DefaultPhoneRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:           getEnv("APP_BASE_URL", "http://localhost:5173"),
		UpstreamBaseURL:      getEnv("CORE_API_URL", ""),
		UpstreamServiceToken: getEnv("CORE_API_TOKEN", ""),
		UpstreamTimeout:      mustDuration(getEnv("CORE_API_TIMEOUT", "15s")),
		RedisURL:             getEnv("REDIS_URL", ""),
		CacheTTL:             mustDuration(getEnv("CACHE_TTL", "20s")),
		CacheEnabled:         strings.EqualFold(getEnv("CACHE_ENABLED", "true"), "true"),
		WhatsAppBaseURL:      getEnv("WHATSAPP_API_URL", ""),
		WhatsAppUsername:     getEnv("WHATSAPP_API_USERNAME", ""),
		WhatsAppPassword:     getEnv("WHATSAPP_API_PASSWORD", ""),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailEnabled:         emailEnabled,
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Casaora"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", ""),
		SLACheckInterval:     mustDuration(getEnv("SLA_CHECK_INTERVAL", "5m")),
		DispatchInterval:     mustDuration(getEnv("MESSAGE_DISPATCH_INTERVAL", "1m")),
		DefaultPhoneRegion:   getEnv("DEFAULT_PHONE_REGION", "PY"),
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("CORE_API_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_ENABLED is true")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
