package memhog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfigApplyEnv(t *testing.T) {
	conf := DefaultConfig()
	err := conf.applyEnv(lookupMap(map[string]string{
		EnvLogPath:       "/tmp/memhog.log",
		EnvLogLevel:      "debug",
		EnvCGroup:        "false",
		EnvPreflight:     "0",
		EnvMemoryLimitMB: "256",
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		SizeMB:        512,
		Hold:          "3s",
		LogPath:       "/tmp/memhog.log",
		LogLevel:      "debug",
		CGroup:        false,
		Preflight:     false,
		MemoryLimitMB: 256,
	}, conf)
}

func TestConfigApplyEnvErrors(t *testing.T) {
	testTable := []struct {
		key   string
		value string
	}{
		{EnvLogLevel, "LOUD"},
		{EnvCGroup, "maybe"},
		{EnvPreflight, "sure"},
		{EnvMemoryLimitMB, "lots"},
		{EnvMemoryLimitMB, "-1"},
	}

	for _, tt := range testTable {
		conf := DefaultConfig()
		err := conf.applyEnv(lookupMap(map[string]string{tt.key: tt.value}))
		assert.Error(t, err, "%s=%s", tt.key, tt.value)
		assert.Contains(t, err.Error(), tt.key)
	}
}

func TestConfigLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MEMHOG_MEMORY_LIMIT_MB=64\nMEMHOG_PREFLIGHT=false\n"), 0644))

	// the process environment wins over the file
	t.Setenv(EnvPreflight, "true")
	require.NoError(t, os.Unsetenv(EnvMemoryLimitMB))
	t.Cleanup(func() { os.Unsetenv(EnvMemoryLimitMB) }) // nolint: errcheck

	conf := DefaultConfig()
	require.NoError(t, conf.LoadEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, 64, conf.MemoryLimitMB)
	assert.True(t, conf.Preflight)
}

func TestConfigOptions(t *testing.T) {
	conf := DefaultConfig()
	conf.SizeMB = 8
	conf.Hold = "250ms"
	conf.MemoryLimitMB = 16
	conf.LogPath = filepath.Join(t.TempDir(), "memhog.log")

	opts, err := conf.Options()
	require.NoError(t, err)

	h, err := New(opts...)
	require.NoError(t, err)
	assert.Equal(t, 8, h.opts.SizeMB)
	assert.Equal(t, uint64(16*bytesPerMB), h.opts.MemoryLimit)
	assert.Contains(t, h.sources, "limit")

	conf.LogLevel = "LOUD"
	_, err = conf.Options()
	assert.Error(t, err)

	conf.LogLevel = "info"
	conf.Hold = "soon"
	opts, err = conf.Options()
	require.NoError(t, err)
	_, err = New(opts...)
	assert.Error(t, err)
}
