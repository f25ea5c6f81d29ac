package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays COMMITQ_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("COMMITQ_DEFAULT_TEAM"); v != "" {
		cfg.DefaultTeam = v
	}
	if v := os.Getenv("COMMITQ_TEAMS"); v != "" {
		parts := strings.Split(v, ",")
		cfg.Teams = nil
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.Teams = append(cfg.Teams, p)
			}
		}
	}
	if v := os.Getenv("COMMITQ_NAME_MAX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.NameMaxLen = n
		}
	}
	if v := os.Getenv("COMMITQ_TITLE_MAX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.TitleMaxLen = n
		}
	}
	if v := os.Getenv("COMMITQ_DESCRIPTION_MAX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.DescriptionMaxLen = n
		}
	}
	if v := os.Getenv("COMMITQ_IMAGE_MAX_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.ImageMaxBytes = n
		}
	}
	if v := os.Getenv("COMMITQ_KEEPALIVE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.KeepAliveMs = n
		}
	}
	if v := os.Getenv("COMMITQ_SUB_BUF"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SubBuf = n
		}
	}
}
