package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearRedirectorEnv(t *testing.T) {
	for _, name := range []string{"SOURCE_URL", "BIND_ADDRESS", "STATUS_BIND_ADDRESS", "IO_TIMEOUT", "CHUNK_SIZE"} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	clearRedirectorEnv(t)
	t.Setenv("SOURCE_URL", "https://env.example.com/a.iso")
	t.Setenv("STATUS_BIND_ADDRESS", "127.0.0.1:8080")
	t.Setenv("IO_TIMEOUT", "30s")

	fc, err := parseFlags([]string{"-timeout", "0", "-status", "", "-bind", "127.0.0.1", "https://flag.example.com/b.iso"})
	require.NoError(t, err)

	cfg, err := loadConfig(fc)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Empty(t, cfg.StatusAddress)
	assert.Equal(t, "127.0.0.1:4444", cfg.BindAddress)
	assert.Equal(t, "https://flag.example.com/b.iso", cfg.SourceURL)
}

func TestLoadConfig_EnvironmentWithoutFlags(t *testing.T) {
	clearRedirectorEnv(t)
	t.Setenv("SOURCE_URL", "https://env.example.com/a.iso")
	t.Setenv("IO_TIMEOUT", "30s")
	t.Setenv("CHUNK_SIZE", "4096")

	fc, err := parseFlags([]string{})
	require.NoError(t, err)

	cfg, err := loadConfig(fc)
	require.NoError(t, err)

	assert.Equal(t, time.Second*30, cfg.Timeout)
	assert.Equal(t, 4096, cfg.ChunkSize)
	assert.Equal(t, "0.0.0.0:4444", cfg.BindAddress)
	assert.Equal(t, "https://env.example.com/a.iso", cfg.SourceURL)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := parseFlags([]string{"https://a.example.com/x", "https://b.example.com/y"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-chunk-size", "many"})
	assert.Error(t, err)
}
