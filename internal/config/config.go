// Package config loads splitwiser settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when neither --config nor CONF_FILE names a file.
const DefaultFile = "splitwiser.yml"

// Config holds the settings of the splitwiser command.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Currency is the symbol printed in front of amounts.
	Currency string `yaml:"currency"`

	// SeedFile optionally names a YAML file of groups to load at startup.
	SeedFile string `yaml:"seed_file"`

	// SampleData loads the built-in sample groups when no seed file is set.
	SampleData bool `yaml:"sample_data"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Currency:   "₹",
		SampleData: true,
	}
}

// Load reads the config file at path, then applies environment overrides.
// An empty path falls back to CONF_FILE and then DefaultFile; a missing
// default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = getEnv("CONF_FILE", DefaultFile)
		explicit = path != DefaultFile
	}

	conf := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, conf); err != nil {
			return nil, fmt.Errorf("error unmarshaling config '%s': %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("error reading config file '%s': %w", path, err)
	}

	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Currency = getEnv("SPLITWISER_CURRENCY", c.Currency)
	c.SeedFile = getEnv("SPLITWISER_SEED_FILE", c.SeedFile)

	if v := os.Getenv("SPLITWISER_SAMPLE_DATA"); v != "" {
		sample, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SPLITWISER_SAMPLE_DATA %q: %w", v, err)
		}
		c.SampleData = sample
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
