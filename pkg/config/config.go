package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load()
	})

	return initErr
}

// load wires defaults, env overrides, and the optional settings file into the
// global viper instance
func load() error {
	// Set default values
	setDefaults()

	// Set up environment variable reading for overrides
	viper.SetEnvPrefix("NESTWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Load config from fixed location (cleaned for safety)
	configPath := filepath.Clean("./config/settings.yaml")
	viper.SetConfigFile(configPath)

	// Try to read the config file
	if err := viper.ReadInConfig(); err != nil {
		// If the config file doesn't exist, just use defaults and env vars
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	// Validate the configuration
	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	backend := viper.GetString("store.backend")
	switch backend {
	case "sheets", "archive", "none":
	default:
		return fmt.Errorf("invalid store backend %q (expected sheets, archive, or none)", backend)
	}

	if backend == "sheets" {
		if viper.GetString("sheets.annotations_spreadsheet_id") == "" {
			fmt.Println("Warning: sheets backend selected but no annotations spreadsheet ID configured")
		}
		if viper.GetString("sheets.credentials_file") == "" {
			fmt.Println("Warning: sheets backend selected but no credentials file configured")
		}
	}

	if backend == "archive" && viper.GetString("database.path") == "" {
		return fmt.Errorf("archive backend requires database.path")
	}

	// Auto-correct invalid session limits
	if viper.GetInt("session.max_images") <= 0 {
		viper.Set("session.max_images", 500)
	}
	if viper.GetInt64("session.max_image_bytes") <= 0 {
		viper.Set("session.max_image_bytes", int64(20*1024*1024))
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Backend {
	case "sheets", "archive", "none":
	default:
		return fmt.Errorf("invalid store backend %q (expected sheets, archive, or none)", c.Store.Backend)
	}

	if c.Session.MaxImages <= 0 {
		c.Session.MaxImages = 500
	}
	if c.Session.MaxImageBytes <= 0 {
		c.Session.MaxImageBytes = 20 * 1024 * 1024
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Session defaults
	viper.SetDefault("session.ttl", 4*time.Hour)
	viper.SetDefault("session.cleanup_interval", 10*time.Minute)
	viper.SetDefault("session.max_images", 500)
	viper.SetDefault("session.max_image_bytes", 20*1024*1024)

	// Store defaults: no external store until one is configured
	viper.SetDefault("store.backend", "none")

	// Google Sheets defaults
	viper.SetDefault("sheets.credentials_file", "./credentials.json")
	viper.SetDefault("sheets.annotations_range", "Sheet1!A:O")
	viper.SetDefault("sheets.assignments_range", "Sheet1!A:E")
	viper.SetDefault("sheets.timeout", 30*time.Second)

	// Database defaults (archive store backend)
	viper.SetDefault("database.path", "./data/nestwatch.db")
	viper.SetDefault("database.verbose", false)

	// Assignments defaults
	viper.SetDefault("assignments.cache_ttl", 5*time.Minute)
}
