package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "pv13900als20c", cfg.Variant)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2_000_000, cfg.SPI.SpeedHz)
	assert.Nil(t, cfg.BasicAuth)
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := &Config{LogLevel: "verbose"}
	cfg.Normalize()

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "pv13900als20c", cfg.Variant)
	assert.Equal(t, "info", cfg.LogLevel, "unknown log level falls back to info")
	assert.Equal(t, 25, cfg.Pins.DC)
	assert.Equal(t, 27, cfg.Pins.Reset)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Listen:   "0.0.0.0:9090",
		Variant:  "rm69080",
		LogLevel: "debug",
		SPI:      SPIConfig{Port: "/dev/spidev0.1", SpeedHz: 4_000_000},
		Pins:     PinConfig{DC: 5, Reset: 6},
	}
	cfg.Normalize()

	assert.Equal(t, "0.0.0.0:9090", cfg.Listen)
	assert.Equal(t, "rm69080", cfg.Variant)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4_000_000, cfg.SPI.SpeedHz)
	assert.Equal(t, 5, cfg.Pins.DC)
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pv13900als20c", cfg.Variant)

	// The file must now exist with 0600 perms.
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &Config{
		Listen:    "127.0.0.1:9999",
		Variant:   "rm69080",
		LogLevel:  "warn",
		SPI:       SPIConfig{SpeedHz: 1_000_000},
		Pins:      PinConfig{DC: 13, Reset: 19},
		Settle:    SettleConfig{ExitSleepMs: 400, DisplayOnMs: 2000},
		BlankCron: "0 23 * * *",
		WakeCron:  "0 7 * * *",
		BasicAuth: &BasicAuthConfig{Username: "admin", Password: "secret"},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.Listen, out.Listen)
	assert.Equal(t, in.Variant, out.Variant)
	assert.Equal(t, in.Settle, out.Settle)
	assert.Equal(t, in.BlankCron, out.BlankCron)
	require.NotNil(t, out.BasicAuth)
	assert.Equal(t, "admin", out.BasicAuth.Username)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestSaveNilConfig(t *testing.T) {
	require.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}
