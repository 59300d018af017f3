// Package config resolves runtime settings: defaults, then an optional YAML
// file, then COMPASS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/compass/internal/llm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath      string        `yaml:"db_path"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	MetricsFile string        `yaml:"metrics_file"`
	LLM         llm.LLMConfig `yaml:"llm"`
}

// Default returns the built-in settings. The store lives under ~/.compass
// when the home directory is known, otherwise in the working directory.
func Default() *Config {
	return &Config{
		DBPath:    filepath.Join(homeDir(), "compass.db"),
		LogLevel:  "info",
		LogFormat: "console",
		LLM:       llm.DefaultConfig(),
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".compass"
	}
	return filepath.Join(home, ".compass")
}

// DefaultPath is $COMPASS_CONFIG or ~/.compass/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("COMPASS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), "config.yaml")
}

// Load reads the file at path over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotEnv exports the variables in a .env file into the process
// environment. Variables that are already set win; a missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. Empty variables are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("COMPASS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("COMPASS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("COMPASS_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("COMPASS_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
	c.LLM.ApplyEnv()
}
