package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

// Config holds all application configuration
type Config struct {
	// Server
	ServerPort         string
	CORSAllowedOrigins []string

	// Storage
	StorageDriver string        // "sqlite", "postgres" or "bolt"
	DatabaseURL   string        // Postgres DSN
	DBOpenTimeout time.Duration // How long to keep retrying when opening storage (default: 10s)

	// Paths
	ConfigDir    string
	DatabaseFile string // $CONFIG_DIR/moviemate.db
	BoltFile     string // $CONFIG_DIR/moviemate.bolt

	// Logging
	LogLevel  string
	LogFormat string // "console" or "json"

	// Tracing
	TracingEnabled bool
}

// LoadFrom loads configuration from the .env file and environment variables
// using v, which may already carry flag bindings
func LoadFrom(v *viper.Viper) (*Config, error) {
	// Setup viper FIRST to load .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	// Set defaults
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("DB_OPEN_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("TRACING_ENABLED", false)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "moviemate")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Server
		ServerPort:         v.GetString("SERVER_PORT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		// Storage
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBOpenTimeout: time.Duration(v.GetInt("DB_OPEN_TIMEOUT_SECONDS")) * time.Second,

		// Paths
		ConfigDir:    configDir,
		DatabaseFile: filepath.Join(configDir, "moviemate.db"),
		BoltFile:     filepath.Join(configDir, "moviemate.bolt"),

		// Logging
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		// Tracing
		TracingEnabled: v.GetBool("TRACING_ENABLED"),
	}

	// Validate
	switch config.StorageDriver {
	case DriverSQLite, DriverBolt:
	case DriverPostgres:
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is %s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", config.StorageDriver)
	}
	if config.ServerPort == "" {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if config.DBOpenTimeout <= 0 {
		return nil, fmt.Errorf("DB_OPEN_TIMEOUT_SECONDS must be positive")
	}

	return config, nil
}

// splitList splits a comma separated value, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
