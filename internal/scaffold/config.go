// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by every command. Environment variables
// take precedence over the file.
type Config struct {
	Author         string   `yaml:"author"`
	AuxPath        []string `yaml:"aux_path"`
	NamingRegistry string   `yaml:"naming_registry"`
	ToolkitVersion string   `yaml:"toolkit_version"`
	AssumeYes      bool     `yaml:"assume_yes"`
}

func DefaultConfig() Config {
	return Config{
		ToolkitVersion: ToolkitVersion,
	}
}

// LoadConfig reads path if it exists. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := readFileSafe(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	return cfg.withEnv().withDefaults(), nil
}

func (c Config) withEnv() Config {
	if db := os.Getenv(EnvNamingDB); db != "" {
		c.NamingRegistry = db
	}

	return c
}

func (c Config) withDefaults() Config {
	if c.ToolkitVersion == "" {
		c.ToolkitVersion = ToolkitVersion
	}

	return c
}
