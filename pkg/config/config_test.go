package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		cleanup func()
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "missing config file with defaults",
			setup: func() {
				viper.Reset()
			},
			cleanup: func() {
				viper.Reset()
			},
			wantErr: false,
			check: func(t *testing.T) {
				if GetInt("server.port") != 8080 {
					t.Errorf("Expected default server.port to be 8080, got %d", GetInt("server.port"))
				}
				if GetString("store.backend") != "none" {
					t.Errorf("Expected default store.backend to be none, got %s", GetString("store.backend"))
				}
				if GetInt("session.max_images") != 500 {
					t.Errorf("Expected default session.max_images to be 500, got %d", GetInt("session.max_images"))
				}
			},
		},
		{
			name: "environment variable override",
			setup: func() {
				viper.Reset()
				os.Setenv("NESTWATCH_SERVER_PORT", "9090")
				os.Setenv("NESTWATCH_STORE_BACKEND", "archive")
			},
			cleanup: func() {
				os.Unsetenv("NESTWATCH_SERVER_PORT")
				os.Unsetenv("NESTWATCH_STORE_BACKEND")
				viper.Reset()
			},
			wantErr: false,
			check: func(t *testing.T) {
				if GetInt("server.port") != 9090 {
					t.Errorf("Expected server.port to be overridden to 9090, got %d", GetInt("server.port"))
				}
				if GetString("store.backend") != "archive" {
					t.Errorf("Expected store.backend to be overridden to archive, got %s", GetString("store.backend"))
				}
			},
		},
		{
			name: "invalid store backend rejected",
			setup: func() {
				viper.Reset()
				os.Setenv("NESTWATCH_STORE_BACKEND", "dropbox")
			},
			cleanup: func() {
				os.Unsetenv("NESTWATCH_STORE_BACKEND")
				viper.Reset()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.cleanup()

			err := load()
			if (err != nil) != tt.wantErr {
				t.Errorf("load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.check != nil && err == nil {
				tt.check(t)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Store:  StoreConfig{Backend: "none"},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 70000},
				Store:  StoreConfig{Backend: "none"},
			},
			wantErr: true,
		},
		{
			name: "invalid backend",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Store:  StoreConfig{Backend: "dropbox"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateAutoCorrectsSessionLimits(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Store:  StoreConfig{Backend: "none"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.Session.MaxImages != 500 {
		t.Errorf("Expected MaxImages auto-corrected to 500, got %d", cfg.Session.MaxImages)
	}
	if cfg.Session.MaxImageBytes != 20*1024*1024 {
		t.Errorf("Expected MaxImageBytes auto-corrected to 20MiB, got %d", cfg.Session.MaxImageBytes)
	}
}
