package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/models"

	"gopkg.in/yaml.v3"
)

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns the configuration used when a key is absent from YAML.
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "autothreshold",
		LogLevel: "INFO",
		Storage: models.MStorageConfig{
			DBType:       "postgres",
			TablePrefix:  "nagios_",
			QueryTimeout: 30,
		},
		Query: models.MQueryConfig{
			LookbackWeeks: 4,
			WindowMinutes: 60,
			Timezone:      "Local",
		},
		Analysis: models.MAnalysisConfig{
			OnMalformed: models.MalformedAbort,
			WarnSigma:   2,
			CritSigma:   3,
		},
		Server: models.MServerConfig{
			Host: "127.0.0.1",
			Port: 8089,
		},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig creates a Config from defaults, the YAML file and environment
func NewConfig(configPath string) (*Config, error) {
	config := Default()

	// 1. Read the YAML file content
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}

		// 2. Unmarshal over the defaults
		if err := yaml.Unmarshal(data, config.MConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
		}
	}

	// 3. Credentials and per-run filters may come from the environment
	applyEnvOverrides(config.MConfig)

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func applyEnvOverrides(cfg *models.MConfig) {
	if v := os.Getenv("AUTOTHRESHOLD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AUTOTHRESHOLD_DB_TYPE"); v != "" {
		cfg.Storage.DBType = v
	}
	if v := os.Getenv("AUTOTHRESHOLD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("AUTOTHRESHOLD_DB_DSN"); v != "" {
		cfg.Storage.DBConnectionString = v
	}
	if v := os.Getenv("AUTOTHRESHOLD_HOST_NAME"); v != "" {
		cfg.Query.HostName = v
	}
	if v := os.Getenv("AUTOTHRESHOLD_SERVICE_NAME"); v != "" {
		cfg.Query.ServiceName = v
	}
	if v := os.Getenv("AUTOTHRESHOLD_LOOKBACK_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.LookbackWeeks = n
		}
	}
	if v := os.Getenv("AUTOTHRESHOLD_WINDOW_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.WindowMinutes = n
		}
	}
	if v := os.Getenv("AUTOTHRESHOLD_ON_MALFORMED"); v != "" {
		cfg.Analysis.OnMalformed = strings.ToLower(v)
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return helpers.NewConfigurationError("application name cannot be empty")
	}

	// Storage
	switch c.Storage.DBType {
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return helpers.NewConfigurationError("database connection string cannot be empty for postgres")
		}
	case "sqlite":
		if c.Storage.DBPath == "" {
			return helpers.NewConfigurationError("database path cannot be empty for sqlite")
		}
	case "":
		return helpers.NewConfigurationError("database type cannot be empty")
	default:
		return helpers.NewConfigurationError("unsupported database type %q", c.Storage.DBType)
	}
	if !tablePrefixPattern.MatchString(c.Storage.TablePrefix) {
		return helpers.NewConfigurationError("invalid table prefix %q", c.Storage.TablePrefix)
	}
	if c.Storage.QueryTimeout <= 0 {
		return helpers.NewConfigurationError("query timeout must be greater than 0")
	}

	// Query
	if c.Query.HostName == "" {
		return helpers.NewConfigurationError("host name cannot be empty")
	}
	if c.Query.ServiceName == "" {
		return helpers.NewConfigurationError("service name cannot be empty")
	}
	if c.Query.LookbackWeeks <= 0 {
		return helpers.NewConfigurationError("lookback weeks must be greater than 0")
	}
	if c.Query.WindowMinutes <= 0 || c.Query.WindowMinutes > 24*60 {
		return helpers.NewConfigurationError("window minutes must be between 1 and 1440")
	}
	if _, err := c.Location(); err != nil {
		return helpers.NewConfigurationError("invalid timezone %q: %v", c.Query.Timezone, err)
	}

	// Analysis
	if c.Analysis.OnMalformed != models.MalformedAbort && c.Analysis.OnMalformed != models.MalformedSkip {
		return helpers.NewConfigurationError("on_malformed must be %q or %q", models.MalformedAbort, models.MalformedSkip)
	}
	if c.Analysis.WarnSigma < 0 || c.Analysis.CritSigma < c.Analysis.WarnSigma {
		return helpers.NewConfigurationError("sigmas must satisfy 0 <= warn_sigma <= crit_sigma")
	}

	// Server
	if c.Server.Port <= 1024 || c.Server.Port > 65535 {
		return helpers.NewConfigurationError("invalid server port number: %d (must be between 1025 and 65535)", c.Server.Port)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Location resolves Query.Timezone; empty or "Local" is the process zone.
func (c *Config) Location() (*time.Location, error) {
	return c.Query.Location()
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0600: may contain credentials)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
