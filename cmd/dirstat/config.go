// cmd/dirstat/config.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors the TOML configuration file. Pointer fields distinguish
// "key not set" from an explicit false.
type Config struct {
	Extensions   []string `toml:"extensions"`
	IgnoreFiles  []string `toml:"ignore_files"`
	IgnoreDirs   []string `toml:"ignore_dirs"`
	UseGitignore *bool    `toml:"use_gitignore"`
	HumanSizes   *bool    `toml:"human_sizes"`
}

var defaultConfig = Config{
	Extensions:   []string{"py"},
	IgnoreFiles:  []string{},
	IgnoreDirs:   []string{},
	UseGitignore: func(b bool) *bool { return &b }(false),
	HumanSizes:   func(b bool) *bool { return &b }(false),
}

func (c Config) useGitignoreOrDefault() bool {
	if c.UseGitignore != nil {
		return *c.UseGitignore
	}
	return *defaultConfig.UseGitignore
}

func (c Config) humanSizesOrDefault() bool {
	if c.HumanSizes != nil {
		return *c.HumanSizes
	}
	return *defaultConfig.HumanSizes
}

// loadConfig finds and loads the configuration, either from
// customConfigPath or from ~/.config/dirstat/config.toml. A missing
// default config is not an error; a missing custom config is.
func loadConfig(customConfigPath string) (Config, error) {
	cfg := defaultConfig
	configFile := ""
	isCustomPath := customConfigPath != ""

	if isCustomPath {
		abs, err := filepath.Abs(customConfigPath)
		if err != nil {
			slog.Error("Could not determine absolute path for custom config file.", "path", customConfigPath, "error", err)
			return defaultConfig, fmt.Errorf("invalid custom config path '%s': %w", customConfigPath, err)
		}
		configFile = abs
		slog.Debug("Attempting to load configuration from custom path.", "path", configFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("Could not determine user home directory. Using default settings only.", "error", err)
			return cfg, nil
		}
		configFile = filepath.Join(homeDir, ".config", "dirstat", "config.toml")
		slog.Debug("Attempting to load configuration from default path.", "path", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if isCustomPath {
				slog.Error("Specified configuration file not found.", "path", configFile)
				return defaultConfig, fmt.Errorf("specified configuration file '%s' not found", configFile)
			}
			slog.Debug("No default config file found, using default settings.", "path", configFile)
			return cfg, nil
		}
		slog.Error("Error reading config file.", "path", configFile, "error", err)
		return defaultConfig, fmt.Errorf("error reading config file '%s': %w", configFile, err)
	}

	if len(content) == 0 {
		slog.Info("Configuration file is empty, using default settings.", "path", configFile)
		return cfg, nil
	}

	slog.Info("Loading configuration.", "path", configFile)
	loadedCfg := defaultConfig
	if meta, err := toml.Decode(string(content), &loadedCfg); err != nil {
		slog.Error("Error decoding TOML config file, using default settings.", "path", configFile, "error", err)
		return defaultConfig, fmt.Errorf("error decoding TOML from '%s': %w", configFile, err)
	} else if len(meta.Undecoded()) > 0 {
		slog.Warn("Unrecognized keys found in config file.", "path", configFile, "keys", meta.Undecoded())
	}
	cfg = loadedCfg

	// Ensure pointer fields have defaults if nil after decoding
	if cfg.UseGitignore == nil {
		cfg.UseGitignore = defaultConfig.UseGitignore
	}
	if cfg.HumanSizes == nil {
		cfg.HumanSizes = defaultConfig.HumanSizes
	}

	slog.Debug("Configuration loaded successfully.",
		"source", configFile,
		"extensions", cfg.Extensions,
		"ignore_files", cfg.IgnoreFiles,
		"ignore_dirs", cfg.IgnoreDirs,
		"use_gitignore", *cfg.UseGitignore,
		"human_sizes", *cfg.HumanSizes,
	)

	return cfg, nil
}
