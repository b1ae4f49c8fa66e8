// Package config loads the process configuration from config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"croprec/logging"

	"gopkg.in/yaml.v2"
)

// FileName is looked up in the working directory, then in its parent.
const FileName = "config.yaml"

// DefaultModelPath is resolved against the working directory.
var DefaultModelPath = filepath.Join("..", "models", "NBClassifier.json")

type Config struct {
	HTTP struct {
		Port         int           `yaml:"port"`
		Timeout      time.Duration `yaml:"timeout"`
		MaxBodyBytes int64         `yaml:"max_body_bytes"`
	} `yaml:"http"`
	Model struct {
		Path      string `yaml:"path"`
		CacheSize int    `yaml:"cache_size"`
	} `yaml:"model"`
	Log logging.Config `yaml:"log"`
}

// Default is the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = 8501
	cfg.HTTP.Timeout = 30 * time.Second
	cfg.HTTP.MaxBodyBytes = 1 << 20
	cfg.Model.Path = DefaultModelPath
	cfg.Model.CacheSize = 256
	cfg.Log = logging.DefaultConfig()
	return cfg
}

// Locate returns the config file to use, or "" when there is none.
func Locate() string {
	for _, path := range []string{FileName, filepath.Join("..", FileName)} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(payload, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the located config file, falling back to Default. It
// also returns the path it read, or "".
func LoadDefault() (*Config, string, error) {
	path := Locate()
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout must not be negative")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Model.CacheSize < 0 {
		return errors.New("model.cache_size must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
