package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string
	// Mail delivery (Gmail app password by default)
	EmailUser          string
	EmailAppPassword   string
	SMTPHost           string
	SMTPPort           string
	SMTPTimeoutSeconds int
	SMTPHelloName      string // EHLO identity; blank keeps "localhost"
	ContactEmailTo     string // Owner inbox receiving notifications
	// Auto-reply signature and profile links
	OwnerName   string
	OwnerTitle  string
	GitHubURL   string
	LinkedInURL string
	// CORS
	AllowedOrigins []string
	// Rate Limiting Configuration
	RateLimitMaxRequests   int
	RateLimitWindowSeconds int
	RateLimitSweepSeconds  int
	RateLimitStore         string // "memory" or "redis"
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Server
	EnableSwagger          bool
	ShutdownTimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	// Load .env file (only present locally; production injects env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		// Mail delivery
		EmailUser:          strings.TrimSpace(getEnv("EMAIL_USER", "")),
		EmailAppPassword:   getEnv("EMAIL_APP_PASSWORD", ""),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPTimeoutSeconds: getEnvInt("SMTP_TIMEOUT_SECONDS", 30),
		SMTPHelloName:      strings.TrimSpace(getEnv("SMTP_HELO_NAME", "")),
		ContactEmailTo:     getEnv("CONTACT_EMAIL_TO", "ayushmaank25@gmail.com"),
		// Auto-reply content
		OwnerName:   getEnv("OWNER_NAME", "Ayushmaan Kumar"),
		OwnerTitle:  getEnv("OWNER_TITLE", "Full Stack Developer"),
		GitHubURL:   strings.TrimRight(getEnv("GITHUB_URL", "https://github.com/lightyear256"), "/"),
		LinkedInURL: strings.TrimRight(getEnv("LINKEDIN_URL", "https://linkedin.com/in/ayushmaan-kumar"), "/"),
		// CORS (comma separated list, trailing slashes stripped)
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		// Rate Limiting Configuration (5 submissions per hour per client)
		RateLimitMaxRequests:   getEnvInt("RATE_LIMIT_MAX_REQUESTS", 5),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 3600),
		RateLimitSweepSeconds:  getEnvInt("RATE_LIMIT_SWEEP_SECONDS", 300),
		RateLimitStore:         strings.ToLower(getEnv("RATE_LIMIT_STORE", "memory")),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Server
		EnableSwagger:          getEnvBool("ENABLE_SWAGGER", true),
		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5),
	}

	if cfg.RateLimitMaxRequests <= 0 {
		cfg.RateLimitMaxRequests = 5
	}
	if cfg.RateLimitWindowSeconds <= 0 {
		cfg.RateLimitWindowSeconds = 3600
	}

	// Missing mail credentials are not fatal at boot: the contact route answers 500 until fixed.
	if !cfg.MailConfigured() {
		log.Println("WARNING: EMAIL_USER or EMAIL_APP_PASSWORD is missing. Contact form will be unavailable.")
	}

	if cfg.RateLimitStore == "redis" && cfg.RedisURL == "" {
		log.Println("WARNING: RATE_LIMIT_STORE=redis but REDIS_URL not configured. Rate limiting will use in-memory store.")
		cfg.RateLimitStore = "memory"
	}

	return cfg, nil
}

// MailConfigured reports whether both delivery credentials are present.
func (c *Config) MailConfigured() bool {
	return c.EmailUser != "" && c.EmailAppPassword != ""
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Environment labels logs: "production" in release mode, "development" otherwise.
func (c *Config) Environment() string {
	if c.IsProduction() {
		return "production"
	}
	return "development"
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
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
