// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Config holds all service configuration.
// Environment determines whether the coupon provider settings load from env
// vars (development) or Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// DataDir is the directory for the persistent cart store.
	// Empty means state is kept in memory only.
	DataDir string

	// CatalogFile points at a YAML catalog definition.
	// Empty means the built-in demo catalog is served.
	CatalogFile string

	// GCP settings (required in production when CouponSecretID is set)
	GCPProject     string
	CouponSecretID string

	// Coupon provider configuration (loaded from secrets in production)
	Coupon CouponConfig
}

// CouponConfig contains coupon validation provider settings.
// In production, this is loaded from Secret Manager as JSON.
// In development, loaded from individual env vars or CONFIG_FILE.
// An empty Endpoint means coupon codes validate against the built-in table.
type CouponConfig struct {
	Endpoint           string `json:"endpoint,omitempty"`
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty"`
	ImpersonateBrowser bool   `json:"impersonate_browser,omitempty"`
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:           envOrDefault("PORT", "8080"),
		Environment:    envOrDefault("ENVIRONMENT", "development"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		DataDir:        os.Getenv("DATA_DIR"),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		GCPProject:     os.Getenv("GCP_PROJECT"),
		CouponSecretID: os.Getenv("COUPON_SECRET_ID"),
	}

	// Load coupon provider config based on environment
	var err error
	if cfg.Environment == "production" && cfg.CouponSecretID != "" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required when COUPON_SECRET_ID is set")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading coupon config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Use a struct that matches the JSON structure
	var fileConfig struct {
		Port        string       `json:"port"`
		Environment string       `json:"environment"`
		LogLevel    string       `json:"log_level"`
		DataDir     string       `json:"data_dir"`
		CatalogFile string       `json:"catalog_file"`
		Coupon      CouponConfig `json:"coupon"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:        withDefault(fileConfig.Port, "8080"),
		Environment: withDefault(fileConfig.Environment, "development"),
		LogLevel:    withDefault(fileConfig.LogLevel, "info"),
		DataDir:     fileConfig.DataDir,
		CatalogFile: fileConfig.CatalogFile,
		Coupon:      fileConfig.Coupon,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches coupon provider config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{secret_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.CouponSecretID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Coupon); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// loadFromEnv reads coupon provider config from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() error {
	c.Coupon = CouponConfig{
		Endpoint: os.Getenv("COUPON_ENDPOINT"),
	}

	if timeout := os.Getenv("COUPON_TIMEOUT_SECONDS"); timeout != "" {
		n, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("parsing COUPON_TIMEOUT_SECONDS: %w", err)
		}
		c.Coupon.TimeoutSeconds = n
	}

	if impersonate := os.Getenv("COUPON_IMPERSONATE_BROWSER"); impersonate != "" {
		b, err := strconv.ParseBool(impersonate)
		if err != nil {
			return fmt.Errorf("parsing COUPON_IMPERSONATE_BROWSER: %w", err)
		}
		c.Coupon.ImpersonateBrowser = b
	}

	return nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Environment != "development" && c.Environment != "production" {
		return fmt.Errorf("environment must be development or production, got %q", c.Environment)
	}

	if c.Coupon.Endpoint != "" {
		u, err := url.Parse(c.Coupon.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid coupon endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("coupon endpoint must be http or https, got %q", c.Coupon.Endpoint)
		}
	}

	if c.Coupon.TimeoutSeconds < 0 {
		return fmt.Errorf("coupon timeout must not be negative")
	}

	return nil
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
