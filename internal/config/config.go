// Package config loads decoder settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cyberman54/ESP32-Paxcounter/internal/options"
)

// Environment variables that override the file.
const (
	EnvFormat     = "PAXDECODE_FORMAT"
	EnvConvert    = "PAXDECODE_CONVERT"
	EnvIncludeRaw = "PAXDECODE_INCLUDE_RAW"
	EnvLogLevel   = "PAXDECODE_LOG_LEVEL"
)

// Config holds the decoder settings shared by the CLI commands.
type Config struct {
	Format     string `yaml:"format"`
	Convert    bool   `yaml:"convert"`
	IncludeRaw bool   `yaml:"include_raw"`
	LogLevel   string `yaml:"log_level"`
}

// file mirrors Config with pointers so absent keys keep their defaults.
type file struct {
	Format     string `yaml:"format"`
	Convert    *bool  `yaml:"convert"`
	IncludeRaw *bool  `yaml:"include_raw"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:   options.DefaultFormat,
		Convert:  true,
		LogLevel: "info",
	}
}

// Load reads path (if non-empty and present), applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			var f file
			if err := yaml.Unmarshal(b, &f); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
			cfg.merge(f)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(f file) {
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Convert != nil {
		c.Convert = *f.Convert
	}
	if f.IncludeRaw != nil {
		c.IncludeRaw = *f.IncludeRaw
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvFormat); ok && v != "" {
		c.Format = v
	}
	if v, ok := os.LookupEnv(EnvConvert); ok && v != "" {
		b, err := options.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConvert, err)
		}
		c.Convert = b
	}
	if v, ok := os.LookupEnv(EnvIncludeRaw); ok && v != "" {
		b, err := options.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIncludeRaw, err)
		}
		c.IncludeRaw = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate normalizes the format name and checks the log level.
func (c *Config) Validate() error {
	name, err := options.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	c.Format = name
	if _, err := options.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
