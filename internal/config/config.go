// Package config loads user preferences from ~/.ironboard/config.yaml.
// Environment variables override the defaults; values in the file override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory holding the database, config, logs and context
const DirName = ".ironboard"

// Config holds user preferences
type Config struct {
	DBPath        string `yaml:"db_path" json:"db_path"`               // SQLite database file
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Ask before destructive commands
	ServeAddr     string `yaml:"serve_addr" json:"serve_addr"`         // Listen address for `ironboard serve`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.ironboard
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Path returns the config file path
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	dbPath, logPath := "", ""
	if dir != "" {
		dbPath = filepath.Join(dir, "ironboard.db")
		logPath = filepath.Join(dir, "logs", "ironboard.log")
	}

	return &Config{
		DBPath:        getEnv("IRONBOARD_DB_PATH", dbPath),
		ConfirmDelete: true,
		ServeAddr:     getEnv("IRONBOARD_ADDR", "127.0.0.1:7070"),
		LogLevel:      getEnv("IRONBOARD_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("IRONBOARD_LOG_FILE", logPath),
		LogConsole:    getEnv("IRONBOARD_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load reads the config file, returning defaults when it does not exist
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads config from path, returning defaults when it does not exist
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("failed to parse config: db_path must not be empty")
	}

	return cfg, nil
}

// Save writes config to ~/.ironboard/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
