// Copyright 2025 TouchGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the host-side emulator configuration.
package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the touchgo.yaml file.
type Config struct {
	LogLevel string   `yaml:"log_level"` // trace, debug, info, warn, error (default: warn)
	Excludes []string `yaml:"excludes"`  // gitignore-style patterns skipped by push
}

// ApplyDefaults fills zero-value fields with their defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Excludes == nil {
		cfg.Excludes = []string{".DS_Store", "Thumbs.db"}
	}
}

// DefaultPath returns the config file path: the TOUCHGO_CONFIG env var if
// set, otherwise touchgo.yaml in the working directory.
func DefaultPath() string {
	if p := os.Getenv("TOUCHGO_CONFIG"); p != "" {
		return p
	}
	return "touchgo.yaml"
}

// Load reads the config file at path. A missing file is not an error: the
// defaults are returned.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyLogLevel sets the global logrus level from the config.
func (cfg *Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
