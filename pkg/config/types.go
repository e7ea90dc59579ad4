package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Session     SessionConfig     `mapstructure:"session"`
	Store       StoreConfig       `mapstructure:"store"`
	Sheets      SheetsConfig      `mapstructure:"sheets"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Assignments AssignmentsConfig `mapstructure:"assignments"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// SessionConfig contains annotation session settings
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxImages       int           `mapstructure:"max_images"`
	MaxImageBytes   int64         `mapstructure:"max_image_bytes"`
}

// StoreConfig selects the external annotation store backend
type StoreConfig struct {
	// Backend is one of "sheets", "archive", or "none"
	Backend string `mapstructure:"backend"`
}

// SheetsConfig contains Google Sheets store settings
type SheetsConfig struct {
	CredentialsFile          string        `mapstructure:"credentials_file"`
	AnnotationsSpreadsheetID string        `mapstructure:"annotations_spreadsheet_id"`
	AnnotationsRange         string        `mapstructure:"annotations_range"`
	AssignmentsSpreadsheetID string        `mapstructure:"assignments_spreadsheet_id"`
	AssignmentsRange         string        `mapstructure:"assignments_range"`
	Timeout                  time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig contains settings for the local archive store backend
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// AssignmentsConfig contains assignment overview settings
type AssignmentsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}
