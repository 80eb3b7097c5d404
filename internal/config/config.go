// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the configuration file of the shdate command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"gonih.org/shdate"
)

// Config holds the configuration of the command and the HTTP service.
type Config struct {
	Calendar shdate.Config `yaml:"calendar" json:"calendar" jsonschema:"description=Calendar settings"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		Workers int           `yaml:"workers" json:"workers" jsonschema:"minimum=0,description=Goroutines used by batch requests (0 for one per CPU)"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
}

// Default returns the configuration used without a configuration file.
func Default() *Config {
	cfg := &Config{Calendar: shdate.DefaultConfig()}
	cfg.setDefaults()
	return cfg
}

// Load reads configuration from a YAML file. Environment variables like
// $TZ are expanded before parsing, and missing settings take their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	if err := cfg.Calendar.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	def := shdate.DefaultConfig()
	if c.Calendar.TimeZone == "" {
		c.Calendar.TimeZone = def.TimeZone
	}
	if c.Calendar.Language == "" {
		c.Calendar.Language = def.Language
	}
	if c.Calendar.FirstDayOfWeek == 0 {
		c.Calendar.FirstDayOfWeek = def.FirstDayOfWeek
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	schema := jsonschema.Reflect(&Config{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
