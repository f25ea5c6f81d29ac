package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	DefaultTeam string   `json:"defaultTeam"`
	Teams       []string `json:"teams"`
	Limits      Limits   `json:"limits"`
	// KeepAliveMs is the SSE keep-alive ping interval.
	KeepAliveMs int `json:"keepAliveMs"`
	// SubBuf is the per-connection outbound event buffer size.
	SubBuf int `json:"subBuf"`
}

// Limits captures input bounds enforced by the engines.
type Limits struct {
	NameMaxLen        int `json:"nameMaxLen"`
	TitleMaxLen       int `json:"titleMaxLen"`
	DescriptionMaxLen int `json:"descriptionMaxLen"`
	ImageMaxBytes     int `json:"imageMaxBytes"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DefaultTeam: "bma-training",
		Teams:       []string{"bma-training", "caffeine", "tmlt"},
		Limits: Limits{
			NameMaxLen:        50,
			TitleMaxLen:       100,
			DescriptionMaxLen: 300,
			ImageMaxBytes:     3 << 20,
		},
		KeepAliveMs: 30000,
		SubBuf:      64,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported; use JSON")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
