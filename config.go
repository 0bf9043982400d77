package memhog

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Config.LoadEnv. Size and hold are not among
// them, they are fixed when the binary is built.
const (
	EnvLogPath       = "MEMHOG_LOG_PATH"
	EnvLogLevel      = "MEMHOG_LOG_LEVEL"
	EnvCGroup        = "MEMHOG_CGROUP"
	EnvPreflight     = "MEMHOG_PREFLIGHT"
	EnvMemoryLimitMB = "MEMHOG_MEMORY_LIMIT_MB"
)

// Config for memhog
type Config struct {
	SizeMB int    // block size in MB
	Hold   string // hold duration, eg. "3s"

	LogPath  string // diagnostic log file, empty for stderr
	LogLevel string // FATAL, ERROR, WARN, INFO, DEBUG or TRACE

	CGroup        bool // take the cgroup memory limit into account
	Preflight     bool // check headroom before allocating
	MemoryLimitMB int  // explicit RSS ceiling in MB, 0 for none
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		SizeMB:    defaultSizeMB,
		Hold:      defaultHold.String(),
		LogLevel:  "WARN",
		CGroup:    true,
		Preflight: true,
	}
}

// LoadEnv loads the given .env files, skipping missing ones, then overrides
// the ambient settings from the environment. Variables already set in the
// environment win over .env files.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) (err error) {
	if v, ok := lookup(EnvLogPath); ok {
		c.LogPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if _, err = ParseLogLevel(v); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = v
	}
	if v, ok := lookup(EnvCGroup); ok {
		if c.CGroup, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%s: %w", EnvCGroup, err)
		}
	}
	if v, ok := lookup(EnvPreflight); ok {
		if c.Preflight, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%s: %w", EnvPreflight, err)
		}
	}
	if v, ok := lookup(EnvMemoryLimitMB); ok {
		if c.MemoryLimitMB, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%s: %w", EnvMemoryLimitMB, err)
		}
		if c.MemoryLimitMB < 0 {
			return fmt.Errorf("%s: must not be negative, got %d", EnvMemoryLimitMB, c.MemoryLimitMB)
		}
	}
	return nil
}

// Options converts the config into Hog options. The logger is created here.
func (c Config) Options() ([]Option, error) {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithSizeMB(c.SizeMB),
		WithHold(c.Hold),
		WithLogger(NewFileLog(c.LogPath, level)),
		WithCGroup(c.CGroup),
		WithPreflight(c.Preflight),
	}
	if c.MemoryLimitMB > 0 {
		opts = append(opts, WithMemoryLimit(uint64(c.MemoryLimitMB)*bytesPerMB))
	}
	return opts, nil
}
