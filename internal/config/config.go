// Package config loads the persons directory settings from environment
// variables, applies defaults and validates them on startup so a bad
// deployment fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Export   ExportConfig
}

// Environments recognised by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// AppConfig holds application-wide settings.
type AppConfig struct {
	// Name is sent in the X-App-Name response header (default: Persons Directory)
	Name string `env:"APP_NAME" default:"Persons Directory"`

	// Environment selects error detail: development shows raw errors (default: development)
	Environment string `env:"APP_ENV" default:"development"`
}

// IsDevelopment reports whether raw error messages may be shown to clients.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Driver is sqlite or postgres (default: sqlite)
	Driver string `env:"DATABASE_DRIVER" default:"sqlite"`

	// URL is a file path for sqlite or a connection string for postgres.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" default:"data/persons.db"`

	// Pool settings apply to postgres only.
	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// UploadConfig holds country spreadsheet upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`

	// CountriesSheet is the worksheet read by country imports (default: Countries)
	CountriesSheet string `env:"UPLOAD_COUNTRIES_SHEET" default:"Countries"`

	// MaxConcurrent is the maximum number of imports running at once (default: 2)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long an import waits for a free slot (default: 10s)
	MaxWait time.Duration `env:"UPLOAD_MAX_WAIT" default:"10s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for upload and export endpoints (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AuthCookieName and AuthCookieValue gate the edit pages.
	AuthCookieName  string `env:"AUTH_COOKIE_NAME" default:"Auth-Key"`
	AuthCookieValue string `env:"AUTH_COOKIE_VALUE" default:"A100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text, json or pretty (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ExportConfig holds file export settings.
type ExportConfig struct {
	// ExcelColumns is the spreadsheet column set: full or compact (default: full)
	ExcelColumns string `env:"EXPORT_EXCEL_COLUMNS" default:"full"`

	// PDFMarginMM is the page margin of PDF exports in millimetres (default: 20)
	PDFMarginMM float64 `env:"EXPORT_PDF_MARGIN_MM" default:"20"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
