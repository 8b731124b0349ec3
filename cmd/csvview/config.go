package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the csvview configuration file (~/.config/csvview/config.yaml).
// Empty strings and nil pointers mean "not set".
type Config struct {
	Comma    string `yaml:"comma"`
	RowDelim string `yaml:"row_delim"`
	Quote    string `yaml:"quote"`
	Escape   string `yaml:"escape"`
	TSV      *bool  `yaml:"tsv"`
	CRLF     *bool  `yaml:"crlf"`
	LogLevel string `yaml:"log_level"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "csvview", "config.yaml")
}

// LoadConfig reads the config file at path. With an empty path the default location is
// tried, and a missing default file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies config file values into opts for every flag the user did not set.
func (cfg Config) apply(opts *dialectOptions, level *string, isSet func(string) bool) {
	if cfg.Comma != "" && !isSet("comma") {
		opts.Comma = cfg.Comma
	}
	if cfg.RowDelim != "" && !isSet("row-delim") {
		opts.RowDelim = cfg.RowDelim
	}
	if cfg.Quote != "" && !isSet("quote") {
		opts.Quote = cfg.Quote
	}
	if cfg.Escape != "" && !isSet("escape") {
		opts.Escape = cfg.Escape
	}
	if cfg.TSV != nil && !isSet("tsv") {
		opts.TSV = *cfg.TSV
	}
	if cfg.CRLF != nil && !isSet("crlf") {
		opts.CRLF = *cfg.CRLF
	}
	if cfg.LogLevel != "" && !isSet("log-level") {
		*level = cfg.LogLevel
	}
}
