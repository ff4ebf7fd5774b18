package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/rhd/internal/fs"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences read from config.yaml.
type Config struct {
	View     string `yaml:"view"`      // Initial view: hex, chars or plain
	LogLevel string `yaml:"log_level"` // Diagnostics level: error, warn, info, debug
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		View:     "hex",
		LogLevel: "warn",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rhd/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rhd", "config.yaml"), nil
}

// Load reads the configuration from DefaultPath.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a recognised value.
func (c *Config) Validate() error {
	if _, err := fs.ParseEncoding(c.View); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
