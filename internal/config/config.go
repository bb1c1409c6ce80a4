// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for campus-nexus.
//
// TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Precedence (highest first): NEXUS_* environment variables, the
// config file, built-in defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/campus-nexus/internal/util"
)

// DefaultFileName is the config file name looked up in the data dir.
const DefaultFileName = "campus.toml"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete application configuration.
type Config struct {
	// DataDir is where the journal, audit log, and config live.
	DataDir string `toml:"data_dir"`

	Seed    SeedConfig    `toml:"seed"`
	Audit   AuditConfig   `toml:"audit"`
	Session SessionConfig `toml:"session"`
	Storage StorageConfig `toml:"storage"`
	Tools   ToolsConfig   `toml:"tools"`
}

// SeedConfig controls the generated dataset.
type SeedConfig struct {
	// Seed is the RNG seed; fixed so demos are reproducible.
	Seed int64 `toml:"seed"`
	// StudentCount is the number of generated students (10..10000).
	StudentCount int `toml:"student_count"`
	// GradesPerStudent is the number of graded courses per student.
	GradesPerStudent int `toml:"grades_per_student"`
}

// AuditConfig controls the audit log.
type AuditConfig struct {
	Enabled bool `toml:"enabled"`
	// LogPath overrides the default <data_dir>/audit.log.
	LogPath string `toml:"log_path"`
	// MaxFileSizeMB is the rotation threshold (1..100).
	MaxFileSizeMB int `toml:"max_file_size_mb"`
}

// SessionConfig controls login sessions.
type SessionConfig struct {
	// TimeoutSecs is the idle timeout in seconds (60..7200).
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig controls sqlite persistence.
type StorageConfig struct {
	Enabled bool `toml:"enabled"`
	// Path overrides the default <data_dir>/attendance.db.
	Path string `toml:"path"`
}

// ToolsConfig controls the tool executor.
type ToolsConfig struct {
	// RateLimitPerSec caps tool executions per second.
	RateLimitPerSec float64 `toml:"rate_limit_per_sec"`
	RateLimitBurst  int     `toml:"rate_limit_burst"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Seed: SeedConfig{
			Seed:             1,
			StudentCount:     300,
			GradesPerStudent: 5,
		},
		Audit: AuditConfig{
			Enabled:       true,
			MaxFileSizeMB: 10,
		},
		Session: SessionConfig{
			TimeoutSecs: 900,
		},
		Storage: StorageConfig{
			Enabled: false,
		},
		Tools: ToolsConfig{
			RateLimitPerSec: 10,
			RateLimitBurst:  20,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".campus-nexus"
	}
	return filepath.Join(home, ".campus-nexus")
}

// AuditLogPath resolves the effective audit log location.
func (c *Config) AuditLogPath() string {
	if c.Audit.LogPath != "" {
		return c.Audit.LogPath
	}
	return filepath.Join(c.DataDir, "audit.log")
}

// StoragePath resolves the effective journal database location.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.DataDir, "attendance.db")
}

// SessionTimeout returns the idle timeout as a duration.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.TimeoutSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file at path, applies environment overrides,
// and validates. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.Validate()
	return cfg, nil
}

// applyEnvOverrides reads NEXUS_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NEXUS_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("NEXUS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed.Seed = n
		}
	}
	if v := os.Getenv("NEXUS_STUDENT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Seed.StudentCount = n
		}
	}
	if v := os.Getenv("NEXUS_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audit.Enabled = b
		}
	}
	if v := os.Getenv("NEXUS_AUDIT_LOG_PATH"); v != "" {
		c.Audit.LogPath = v
	}
	if v := os.Getenv("NEXUS_SESSION_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.TimeoutSecs = n
		}
	}
	if v := os.Getenv("NEXUS_STORAGE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Storage.Enabled = b
		}
	}
	if v := os.Getenv("NEXUS_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
}

// Validate clamps out-of-range values to safe bounds. It never fails;
// a bad config degrades to defaults rather than refusing to start.
func (c *Config) Validate() {
	c.Seed.StudentCount = util.Clamp(c.Seed.StudentCount, 10, 10000)
	c.Seed.GradesPerStudent = util.Clamp(c.Seed.GradesPerStudent, 1, 18)
	c.Audit.MaxFileSizeMB = util.Clamp(c.Audit.MaxFileSizeMB, 1, 100)
	c.Session.TimeoutSecs = util.Clamp(c.Session.TimeoutSecs, 60, 7200)
	if c.Tools.RateLimitPerSec <= 0 {
		c.Tools.RateLimitPerSec = 10
	}
	if c.Tools.RateLimitBurst < 1 {
		c.Tools.RateLimitBurst = 20
	}
}

// Save writes the config atomically to path.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
