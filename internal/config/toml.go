// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Report  ReportConfig  `toml:"report"`
	History HistoryConfig `toml:"history"`
}

// ReportConfig maps report and chart settings.
type ReportConfig struct {
	Height  *int  `toml:"height"`
	Width   *int  `toml:"width"`
	NoChart *bool `toml:"no-chart"`
	Color   *bool `toml:"color"`
	NoSave  *bool `toml:"no-save"`
}

// HistoryConfig maps history listing settings.
type HistoryConfig struct {
	Last *int `toml:"last"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
