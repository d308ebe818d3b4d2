// Package config provides configuration loading and structs for the Shirabe server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akiyama/shirabe/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Mail    MailConfig    `yaml:"mail"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ContentConfig holds settings for the hosted content database.
type ContentConfig struct {
	BaseURL           string `yaml:"base_url"`
	Token             string `yaml:"token"`
	APIVersion        string `yaml:"api_version"`
	BlogDatabaseID    string `yaml:"blog_database_id"`
	ProjectDatabaseID string `yaml:"project_database_id"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

// SearchConfig holds orchestrator bounds and ranking weights.
type SearchConfig struct {
	DefaultLanguage string         `yaml:"default_language"`
	HydrationLimit  int            `yaml:"hydration_limit"`
	MaxResults      int            `yaml:"max_results"`
	Ranking         ranking.Config `yaml:"ranking"`
}

// StorageConfig holds the comments database path.
type StorageConfig struct {
	CommentsPath string `yaml:"comments_path"`
}

// MailConfig holds settings for the transactional email service used by the
// contact form.
type MailConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
}

// Load reads and parses the config file at path, applies environment
// overrides for secrets, expands paths, and applies defaults. Returns an
// error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	// Secrets are preferably supplied via environment, not the config file.
	if v := os.Getenv("SHIRABE_CONTENT_TOKEN"); v != "" {
		cfg.Content.Token = v
	}
	if v := os.Getenv("SHIRABE_MAIL_API_KEY"); v != "" {
		cfg.Mail.APIKey = v
	}

	configDir := filepath.Dir(path)
	if cfg.Storage.CommentsPath != "" {
		cfg.Storage.CommentsPath = expandPath(cfg.Storage.CommentsPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return filepath.Join(configDir, path)
}
