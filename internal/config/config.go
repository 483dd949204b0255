// Package config reads the backend configuration from the environment.
//
// A .env file in the working directory is loaded first. Variables that are
// already set in the environment take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// API_URL is the externally reachable URL of the API, used for links
	APIURL *url.URL

	// HTTP server
	Port string

	// DATA_DIR holds the SQLite database
	DataDir string

	// Bill reconciliation
	BillLookbackMonths int
	BillMatchWindow    time.Duration

	EnablePprof bool
}

// DSN returns the data source name of the database in DataDir.
func (c *Config) DSN() string {
	return filepath.Join(c.DataDir, "vault.db") + "?_pragma=foreign_keys(1)"
}

// Load reads the .env file, if present, and the environment.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return nil, errors.New("environment variable API_URL must be set")
	}

	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	cfg := &Config{
		APIURL:             parsed,
		Port:               getEnv("PORT", "8080"),
		DataDir:            getEnv("DATA_DIR", "data"),
		BillLookbackMonths: getEnvInt("BILL_LOOKBACK_MONTHS", 6),
		BillMatchWindow:    time.Duration(getEnvInt("BILL_MATCH_WINDOW_DAYS", 7)) * 24 * time.Hour,
		EnablePprof:        os.Getenv("ENABLE_PPROF") == "true",
	}

	return cfg, cfg.Validate()
}

// Validate returns all problems with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIURL == nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		problems = append(problems, "API_URL must be an absolute URL like https://example.com/api")
	}

	if c.DataDir == "" {
		problems = append(problems, "DATA_DIR cannot be empty")
	}

	if c.BillLookbackMonths < 1 {
		problems = append(problems, fmt.Sprintf("invalid bill lookback %d: must be at least one month", c.BillLookbackMonths))
	}

	if c.BillMatchWindow < 0 {
		problems = append(problems, fmt.Sprintf("invalid bill match window %s: must not be negative", c.BillMatchWindow))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default for unparseable values.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
