package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvAssemblyWorkers = "DOCKET_ASSEMBLY_WORKERS"
	EnvAssemblyWorkDir = "DOCKET_ASSEMBLY_WORK_DIR"
)

// AssemblyConfig holds background package assembly settings.
type AssemblyConfig struct {
	// Workers bounds parallel per-document work within a single assembly run.
	Workers int `toml:"workers"`
	// WorkDir is the parent directory for per-run scratch directories. Empty
	// means the system temp directory.
	WorkDir string `toml:"work_dir"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AssemblyConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AssemblyConfig) Merge(overlay *AssemblyConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.WorkDir != "" {
		c.WorkDir = overlay.WorkDir
	}
}

func (c *AssemblyConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c *AssemblyConfig) loadEnv() {
	if v := os.Getenv(EnvAssemblyWorkers); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.Workers = workers
		}
	}
	if v := os.Getenv(EnvAssemblyWorkDir); v != "" {
		c.WorkDir = v
	}
}

func (c *AssemblyConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	return nil
}
