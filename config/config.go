package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from YAML.
type Config struct {
	// DataFile is the catalogue JSON file.
	DataFile string `yaml:"data_file"`
	// LogFile receives structured logs; a fullscreen TUI cannot log to
	// stdout without corrupting the display.
	LogFile string `yaml:"log_file"`
	Theme   struct {
		Accent  string `yaml:"accent"`  // selection and focused-field color
		Success string `yaml:"success"` // status line color
		Error   string `yaml:"error"`   // error popup and status color
		Muted   string `yaml:"muted"`   // hints, borders, empty-list text
	} `yaml:"theme"`
}

// Load reads configuration from the default location
// (~/.config/fruitcat/config.yaml).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "fruitcat", "config.yaml"))
}

// LoadFile loads configuration from a specific path. A missing file
// returns the default configuration; set fields override defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if loaded.DataFile != "" {
		cfg.DataFile = loaded.DataFile
	}
	if loaded.LogFile != "" {
		cfg.LogFile = loaded.LogFile
	}
	if loaded.Theme.Accent != "" {
		cfg.Theme.Accent = loaded.Theme.Accent
	}
	if loaded.Theme.Success != "" {
		cfg.Theme.Success = loaded.Theme.Success
	}
	if loaded.Theme.Error != "" {
		cfg.Theme.Error = loaded.Theme.Error
	}
	if loaded.Theme.Muted != "" {
		cfg.Theme.Muted = loaded.Theme.Muted
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.DataFile = filepath.Join(home, ".local", "share", "fruitcat", "fruits.json")
		cfg.LogFile = filepath.Join(home, ".local", "share", "fruitcat", "fruitcat.log")
	} else {
		cfg.DataFile = "fruits.json"
		cfg.LogFile = "fruitcat.log"
	}

	cfg.Theme.Accent = "229"
	cfg.Theme.Success = "70"
	cfg.Theme.Error = "9"
	cfg.Theme.Muted = "244"
	return cfg
}
