// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort        = 8080
	DefaultPDFTimeout  = 30 * time.Second
	DefaultSessionTTL  = 2 * time.Hour
	DefaultMaxSessions = 10000
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

// Config is the server configuration. DATABASE_URL is optional: without it
// finished intakes are not persisted and the admin endpoints are disabled.
type Config struct {
	Port        int
	DatabaseURL string

	// Catalog and rendering overrides
	CatalogPath     string // YAML catalog replacing the built-in one
	SummaryTemplate string // HTML template replacing the built-in summary page

	// Export recipients
	ContactEmail  string
	WhatsAppPhone string
	PDFEnabled    bool
	PDFTimeout    time.Duration

	// In-memory wizard sessions
	SessionTTL  time.Duration
	MaxSessions int

	// CORS
	AllowedOrigins []string

	LogLevel  string
	LogFormat string // console or json
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:            getEnvInt("PORT", DefaultPort),
		DatabaseURL:     getEnvString("DATABASE_URL", ""),
		CatalogPath:     getEnvString("CATALOG_PATH", ""),
		SummaryTemplate: getEnvString("SUMMARY_TEMPLATE", ""),
		ContactEmail:    getEnvString("CONTACT_EMAIL", ""),
		WhatsAppPhone:   getEnvString("WHATSAPP_PHONE", ""),
		PDFEnabled:      getEnvBool("PDF_ENABLED", true),
		PDFTimeout:      getEnvDuration("PDF_TIMEOUT", DefaultPDFTimeout),
		SessionTTL:      getEnvDuration("SESSION_TTL", DefaultSessionTTL),
		MaxSessions:     getEnvInt("MAX_SESSIONS", DefaultMaxSessions),
		AllowedOrigins:  parseList(getEnvString("ALLOWED_ORIGINS", "")),
		LogLevel:        strings.ToLower(getEnvString("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:       strings.ToLower(getEnvString("LOG_FORMAT", DefaultLogFormat)),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.PDFTimeout <= 0 {
		return fmt.Errorf("config error: PDF_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config error: SESSION_TTL must be positive")
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("config error: MAX_SESSIONS must be at least 1, got %d", c.MaxSessions)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config error: LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}

	// Validate file paths exist (if specified)
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}
	if c.SummaryTemplate != "" {
		if _, err := os.Stat(c.SummaryTemplate); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.SummaryTemplate)
		}
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
