package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines engine configuration.
type Config struct {
	Roots  []RootConfig `yaml:"roots"`
	DB     DBConfig     `yaml:"db"`
	Scan   ScanConfig   `yaml:"scan"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// RootConfig describes one configured drive root. Location is the logical
// drive label ("A", "B", ...) that scanned records are tagged with.
type RootConfig struct {
	Path     string `yaml:"path"`
	Location string `yaml:"location"`
	Enabled  bool   `yaml:"enabled"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type ScanConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// UnmarshalYAML accepts duration strings like "30m" or "1h".
func (s *ScanConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Interval string `yaml:"interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Interval == "" {
		return nil
	}
	d, err := time.ParseDuration(raw.Interval)
	if err != nil {
		return fmt.Errorf("invalid scan interval: %w", err)
	}
	s.Interval = d
	return nil
}

type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	return LoadFile(os.Getenv("PROJDEX_CONFIG_PATH"))
}

// LoadFile reads configuration from an explicit YAML path (empty for none),
// then applies environment overrides on top.
func LoadFile(path string) (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "projdex.db",
		},
		Scan: ScanConfig{
			Interval: 30 * time.Minute,
		},
		Search: SearchConfig{
			MaxResults: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("PROJDEX_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if interval := os.Getenv("PROJDEX_SCAN_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJDEX_SCAN_INTERVAL: %w", err)
		}
		cfg.Scan.Interval = d
	}
	if maxStr := os.Getenv("PROJDEX_SEARCH_MAX_RESULTS"); maxStr != "" {
		maxResults, err := strconv.Atoi(maxStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJDEX_SEARCH_MAX_RESULTS: %w", err)
		}
		cfg.Search.MaxResults = maxResults
	}
	if level := os.Getenv("PROJDEX_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// EnabledRoots returns the roots that scanning should cover.
func (c Config) EnabledRoots() []RootConfig {
	var roots []RootConfig
	for _, r := range c.Roots {
		if r.Enabled {
			roots = append(roots, r)
		}
	}
	return roots
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
