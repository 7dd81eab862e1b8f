package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for the analyze and ui commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for analysis runs
type DefaultsConfig struct {
	Output       string `mapstructure:"output"`
	ReportFormat string `mapstructure:"report_format"`
	Detailed     bool   `mapstructure:"detailed"`
	Encoding     string `mapstructure:"encoding"`
	ChunkSize    int    `mapstructure:"chunk_size"`
	MaxEntries   int    `mapstructure:"max_entries"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Output:       "", // no default: -o or an explicit defaults.output is required
			ReportFormat: "both",
			Encoding:     "utf-8",
			ChunkSize:    64 * 1024,
			MaxEntries:   100,
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.convlog.yaml or ./.convlog.yml
// 2. ~/.convlog.yaml or ~/.convlog.yml
// 3. $XDG_CONFIG_HOME/convlog/config.yaml (or ~/.config/convlog/config.yaml)
// 4. /etc/convlog/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".convlog.yaml", ".convlog.yml", "convlog.yaml", "convlog.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "convlog"))
	}
	searchPaths = append(searchPaths, "/etc/convlog")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// config.yaml only counts inside a convlog directory
		if filepath.Base(dir) == "convlog" {
			path := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONVLOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CONVLOG_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("CONVLOG_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("CONVLOG_OUTPUT"); v != "" {
		cfg.Defaults.Output = v
	}
	if v := os.Getenv("CONVLOG_ENCODING"); v != "" {
		cfg.Defaults.Encoding = v
	}
	if v := os.Getenv("CONVLOG_REPORT_FORMAT"); v != "" {
		cfg.Defaults.ReportFormat = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
