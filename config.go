package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName     = ".lispico.yml"
	historyFileName    = ".lispico_history"
	defaultPrompt      = "$ "
	continuationPrompt = "  "
)

// Config holds the interpreter settings read from .lispico.yml
type Config struct {
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history_file"`
	IncludePath []string `yaml:"include_path"`
	Trace       bool     `yaml:"trace"`
	Preload     []string `yaml:"preload"`
}

func DefaultConfig() *Config {
	cfg := &Config{Prompt: defaultPrompt}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, historyFileName)
	}
	return cfg
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configFileName)
}

// LoadConfig reads the config file at path on top of the defaults. When
// explicit is false a missing file is not an error.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	for i, dir := range cfg.IncludePath {
		cfg.IncludePath[i] = expandHome(dir)
	}
	for i, p := range cfg.Preload {
		cfg.Preload[i] = expandHome(p)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, dir := range c.IncludePath {
		if strings.TrimSpace(dir) == "" {
			return errors.New("include_path entries must not be empty")
		}
	}
	for _, p := range c.Preload {
		if strings.TrimSpace(p) == "" {
			return errors.New("preload entries must not be empty")
		}
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
