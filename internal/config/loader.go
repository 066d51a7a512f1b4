package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables, applies the
// default tag of every unset field and validates the result. Every
// malformed variable is reported, not just the first.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := populate(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// populate fills the env-tagged fields of the section structs under v.
func populate(v reflect.Value) error {
	var errs []error
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field, fv := t.Field(i), v.Field(i)
		if !fv.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := populate(fv); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		raw := lookup(name, field.Tag.Get("envAlt"), field.Tag.Get("default"))
		if raw == "" {
			continue
		}
		if err := assign(fv, raw); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", name, raw, err))
		}
	}

	return errors.Join(errs...)
}

// lookup returns the first non-empty of the primary variable, the
// alternate variable and the default.
func lookup(name, alt, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if alt != "" {
		if v := os.Getenv(alt); v != "" {
			return v
		}
	}
	return def
}

var durationType = reflect.TypeOf(time.Duration(0))

// assign parses raw into fv according to the field's type.
func assign(fv reflect.Value, raw string) error {
	if fv.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return errors.New("not a duration")
		}
		fv.SetInt(int64(d))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.New("not an integer")
		}
		fv.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.New("not a number")
		}
		fv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("not a boolean")
		}
		fv.SetBool(b)
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice of %s", fv.Type().Elem())
		}
		fv.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported type %s", fv.Type())
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// App validation
	switch c.App.Environment {
	case EnvDevelopment, EnvProduction, "staging", "test":
	default:
		errs = append(errs, fmt.Sprintf("APP_ENV (%q) must be one of: development, staging, test, production", c.App.Environment))
	}

	// Database validation
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.URL == "" {
			errs = append(errs, "DATABASE_URL is required")
		}
	case DriverPostgres:
		if !strings.HasPrefix(c.Database.URL, "postgres://") && !strings.HasPrefix(c.Database.URL, "postgresql://") {
			errs = append(errs, "DATABASE_URL must be a postgres:// connection string when DATABASE_DRIVER is postgres")
		}
		if c.Database.MaxConns < c.Database.MinConns {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
				c.Database.MaxConns, c.Database.MinConns))
		}
		if c.Database.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
		if c.Database.MinConns < 0 {
			errs = append(errs, "DB_MIN_CONNS must be non-negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("DATABASE_DRIVER (%q) must be one of: sqlite, postgres", c.Database.Driver))
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Upload validation
	if c.Upload.MaxFileSize <= 0 {
		errs = append(errs, "UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if strings.TrimSpace(c.Upload.CountriesSheet) == "" {
		errs = append(errs, "UPLOAD_COUNTRIES_SHEET must not be blank")
	}
	if c.Upload.MaxConcurrent <= 0 {
		errs = append(errs, "UPLOAD_MAX_CONCURRENT must be positive")
	}
	if c.Upload.MaxWait <= 0 {
		errs = append(errs, "UPLOAD_MAX_WAIT must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if c.Rate.Enabled && c.Rate.UploadLimit <= 0 {
		errs = append(errs, "RATE_LIMIT_UPLOAD must be positive when rate limiting is enabled")
	}

	// Security validation
	if c.Security.AuthCookieName == "" || c.Security.AuthCookieValue == "" {
		errs = append(errs, "AUTH_COOKIE_NAME and AUTH_COOKIE_VALUE must both be set")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true, "pretty": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json, pretty", c.Logging.Format))
	}

	// Export validation
	validColumns := map[string]bool{"full": true, "compact": true}
	if !validColumns[strings.ToLower(c.Export.ExcelColumns)] {
		errs = append(errs, fmt.Sprintf("EXPORT_EXCEL_COLUMNS (%q) must be one of: full, compact", c.Export.ExcelColumns))
	}
	if c.Export.PDFMarginMM <= 0 || c.Export.PDFMarginMM > 50 {
		errs = append(errs, fmt.Sprintf("EXPORT_PDF_MARGIN_MM (%g) must be in (0, 50]", c.Export.PDFMarginMM))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Postgres URLs and the auth cookie value are masked.
func (c *Config) String() string {
	dbURL := c.Database.URL
	if c.Database.Driver != DriverSQLite {
		dbURL = "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("App: {Name: %q, Environment: %q}, ", c.App.Name, c.App.Environment))
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Database: {Driver: %q, URL: %s, MaxConns: %d, MinConns: %d}, ",
		c.Database.Driver, dbURL, c.Database.MaxConns, c.Database.MinConns))
	b.WriteString(fmt.Sprintf("Upload: {MaxFileSize: %d, CountriesSheet: %q, MaxConcurrent: %d, MaxWait: %s}, ",
		c.Upload.MaxFileSize, c.Upload.CountriesSheet, c.Upload.MaxConcurrent, c.Upload.MaxWait))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Security: {AuthCookieName: %q, AuthCookieValue: [MASKED]}, ",
		c.Security.AuthCookieName))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}, ",
		c.Logging.Level, c.Logging.Format))
	b.WriteString(fmt.Sprintf("Export: {ExcelColumns: %q, PDFMarginMM: %g}",
		c.Export.ExcelColumns, c.Export.PDFMarginMM))
	b.WriteString("}")
	return b.String()
}
