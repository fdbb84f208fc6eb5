// Package config handles repository configuration stored in .gitlet/config.yml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/logging"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Merge-base strategies selectable through merge_base_strategy.
const (
	// MergeBaseBFS returns the first breadth-first ancestor of HEAD that is
	// also an ancestor of the given branch.
	MergeBaseBFS = "bfs"

	// MergeBaseLCA returns a lowest common ancestor.
	MergeBaseLCA = "lca"
)

// Environment variables that override config.yml.
const (
	EnvLogLevel  = "GITLET_LOG_LEVEL"
	EnvMergeBase = "GITLET_MERGE_BASE"
	EnvCacheSize = "GITLET_OBJECT_CACHE_SIZE"
)

const (
	DefaultCompressionLevel = 6
	DefaultObjectCacheSize  = 512
)

// Config represents repository configuration.
type Config struct {
	RepositoryID      string `yaml:"repository_id"`
	DefaultBranch     string `yaml:"default_branch"`
	LogLevel          string `yaml:"log_level"`
	CompressionLevel  int    `yaml:"compression_level"`
	ObjectCacheSize   int    `yaml:"object_cache_size"`
	MergeBaseStrategy string `yaml:"merge_base_strategy"`
}

// Default returns the configuration written by init, with a fresh repository id.
func Default() *Config {
	return &Config{
		RepositoryID:      uuid.NewString(),
		DefaultBranch:     constants.DefaultBranch,
		LogLevel:          logging.DefaultLevel,
		CompressionLevel:  DefaultCompressionLevel,
		ObjectCacheSize:   DefaultObjectCacheSize,
		MergeBaseStrategy: MergeBaseBFS,
	}
}

// Path returns the path to config.yml inside a .gitlet directory.
func Path(gitletDir string) string {
	return filepath.Join(gitletDir, constants.ConfigFile)
}

// Load reads config.yml from gitletDir, fills missing fields with defaults and
// applies overrides from .gitlet/.env and the process environment.
// A missing config.yml is not an error.
func Load(gitletDir string) (*Config, error) {
	cfg := Default()
	cfg.RepositoryID = ""

	data, err := os.ReadFile(Path(gitletDir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// godotenv.Load never overrides variables already set in the environment.
	envPath := filepath.Join(gitletDir, constants.EnvFile)
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvMergeBase); v != "" {
		c.MergeBaseStrategy = v
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvCacheSize, err)
		}
		c.ObjectCacheSize = n
	}
	return nil
}

func (c *Config) fillDefaults() {
	if c.DefaultBranch == "" {
		c.DefaultBranch = constants.DefaultBranch
	}
	if c.LogLevel == "" {
		c.LogLevel = logging.DefaultLevel
	}
	if c.CompressionLevel == 0 {
		c.CompressionLevel = DefaultCompressionLevel
	}
	if c.ObjectCacheSize == 0 {
		c.ObjectCacheSize = DefaultObjectCacheSize
	}
	if c.MergeBaseStrategy == "" {
		c.MergeBaseStrategy = MergeBaseBFS
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("invalid compression_level: %d (valid: 1-9)", c.CompressionLevel)
	}
	if c.ObjectCacheSize < 1 {
		return fmt.Errorf("invalid object_cache_size: %d", c.ObjectCacheSize)
	}
	switch c.MergeBaseStrategy {
	case MergeBaseBFS, MergeBaseLCA:
	default:
		return fmt.Errorf("invalid merge_base_strategy: %s (valid: %s, %s)",
			c.MergeBaseStrategy, MergeBaseBFS, MergeBaseLCA)
	}
	return nil
}

// Save writes the configuration to config.yml inside gitletDir.
func (c *Config) Save(gitletDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(Path(gitletDir), data, constants.FilePerms); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
