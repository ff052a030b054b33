package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig describes where the catalog comes from and how records are checked.
type CatalogConfig struct {
	Source        string   `yaml:"source"`         // "file", "http", "sqlite"
	Location      string   `yaml:"location"`       // path or URL
	Timeout       Duration `yaml:"timeout"`        // http source only
	MissingFields string   `yaml:"missing_fields"` // "skip", "default", "reject"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
	Title   string `yaml:"title"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Environment variables that override the file.
const (
	EnvAddress  = "LANGCAT_ADDRESS"
	EnvSource   = "LANGCAT_SOURCE"
	EnvLocation = "LANGCAT_LOCATION"
	EnvLogLevel = "LANGCAT_LOG_LEVEL"
)

var (
	validSources  = []string{"file", "http", "sqlite"}
	validPolicies = []string{"skip", "default", "reject"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:        "file",
			Location:      "data.json",
			Timeout:       Duration(30 * time.Second),
			MissingFields: "skip",
		},
		Server: ServerConfig{
			Address: "localhost:8080",
			Title:   "Base de Conhecimento de Linguagens",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT save back to disk.
// Environment overrides are applied last and never written to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
	}

	cfg.ApplyEnv()
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from LANGCAT_* variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAddress); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Catalog.Source = v
	}
	if v := os.Getenv(EnvLocation); v != "" {
		c.Catalog.Location = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Server.Level = v
	}
}

// expandPaths resolves $VAR references in file locations.
func (c *Config) expandPaths() {
	c.Catalog.Location = os.ExpandEnv(c.Catalog.Location)
	c.Log.Server.Path = os.ExpandEnv(c.Log.Server.Path)
	c.Log.Requests.Path = os.ExpandEnv(c.Log.Requests.Path)
}

// Validate checks enum fields and required values.
func (c *Config) Validate() error {
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	if !contains(validSources, c.Catalog.Source) {
		return fmt.Errorf("invalid catalog.source '%s': must be one of %s", c.Catalog.Source, strings.Join(validSources, ", "))
	}
	if strings.TrimSpace(c.Catalog.Location) == "" {
		return fmt.Errorf("catalog.location must not be empty")
	}
	c.Catalog.MissingFields = strings.ToLower(strings.TrimSpace(c.Catalog.MissingFields))
	if c.Catalog.MissingFields == "" {
		c.Catalog.MissingFields = "skip"
	}
	if !contains(validPolicies, c.Catalog.MissingFields) {
		return fmt.Errorf("invalid catalog.missing_fields '%s': must be one of %s", c.Catalog.MissingFields, strings.Join(validPolicies, ", "))
	}
	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog.timeout must not be negative")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# langcat Configuration
# ---------------------
# Supported Units:
#   Duration: Go durations (500ms, 30s, 1m30s) or a bare number of seconds
# Environment overrides: LANGCAT_ADDRESS, LANGCAT_SOURCE, LANGCAT_LOCATION, LANGCAT_LOG_LEVEL

`)
	data = append(header, data...)

	// Inject comments for Enum fields
	reSource := regexp.MustCompile(`(?m)^(\s+)source:`)
	data = reSource.ReplaceAll(data, []byte("${1}# Options: file, http, sqlite\n${1}source:"))

	rePolicy := regexp.MustCompile(`(?m)^(\s+)missing_fields:`)
	data = rePolicy.ReplaceAll(data, []byte("${1}# Records without nome/descricao. Options: skip, default, reject\n${1}missing_fields:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
