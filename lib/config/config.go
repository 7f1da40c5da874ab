// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "FOUNDRY_CONFIG"

// Config is the foundry tool configuration.
type Config struct {
	// ROM is the ROM image commands operate on when --rom is not given.
	ROM string `yaml:"rom"`

	// ObjectSets is a descriptor file (YAML, or JSONC by extension)
	// replacing the embedded object set table. Empty uses the embedded
	// defaults.
	ObjectSets string `yaml:"object_sets"`

	// Catalog is the level catalog file. Without one, levels must be
	// addressed by explicit offsets.
	Catalog string `yaml:"catalog"`

	// Write configures ROM writes.
	Write WriteConfig `yaml:"write"`
}

// WriteConfig configures ROM writes.
type WriteConfig struct {
	// AllowOverflow writes levels that exceed their on-disk budget
	// instead of refusing. The overflow clobbers whatever data follows
	// the level in the ROM.
	// Default: false
	AllowOverflow bool `yaml:"allow_overflow"`

	// Backup copies the ROM to <rom>.bak before overwriting it in place.
	// Default: true
	Backup bool `yaml:"backup"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Write: WriteConfig{
			AllowOverflow: false,
			Backup:        true,
		},
	}
}

// Load loads configuration from the file named by FOUNDRY_CONFIG. It
// fails if the variable is not set; use [Resolve] for the optional
// lookup the CLI performs.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your foundry.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Resolve picks the configuration for a CLI invocation: the explicit
// path if given, else FOUNDRY_CONFIG if set, else [Default].
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path. Values from
// the file are merged over [Default]. The only expansion performed is
// ${VAR} and ${VAR:-default} in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.ROM = expandVars(c.ROM, vars)
	c.ObjectSets = expandVars(c.ObjectSets, vars)
	c.Catalog = expandVars(c.Catalog, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks that every configured file exists.
func (c *Config) Validate() error {
	var errs []error

	for _, file := range []struct {
		key  string
		path string
	}{
		{"rom", c.ROM},
		{"object_sets", c.ObjectSets},
		{"catalog", c.Catalog},
	} {
		if file.path == "" {
			continue
		}
		info, err := os.Stat(file.path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file.key, err))
			continue
		}
		if info.IsDir() {
			errs = append(errs, fmt.Errorf("%s: %s is a directory", file.key, file.path))
		}
	}

	return errors.Join(errs...)
}
