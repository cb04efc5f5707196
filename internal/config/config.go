package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SPIConfig describes the SPI side of the panel link.
type SPIConfig struct {
	// Port is the periph.io SPI port name ("" for the default, typically
	// /dev/spidev0.0 on Raspberry Pi).
	Port string `yaml:"port" json:"port"`
	// SpeedHz is the SPI clock in Hz. Zero selects the driver default.
	SpeedHz int `yaml:"speed_hz" json:"speed_hz"`
}

// PinConfig holds the BCM GPIO numbers for the control lines.
type PinConfig struct {
	DC    int `yaml:"dc" json:"dc"`
	Reset int `yaml:"reset" json:"reset"`
}

// SettleConfig overrides the per-variant settle delays in milliseconds.
// Zero keeps the variant default.
type SettleConfig struct {
	ExitSleepMs int `yaml:"exit_sleep_ms" json:"exit_sleep_ms"`
	DisplayOnMs int `yaml:"display_on_ms" json:"display_on_ms"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the status API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the status API.
	Listen string `yaml:"listen" json:"listen"`

	// Variant selects the panel module, e.g. "pv13900als20c".
	Variant string `yaml:"variant" json:"variant"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	SPI    SPIConfig    `yaml:"spi" json:"spi"`
	Pins   PinConfig    `yaml:"pins" json:"pins"`
	Settle SettleConfig `yaml:"settle" json:"settle"`

	// BlankCron / WakeCron are cron schedules (e.g. "0 23 * * *") for
	// powering the panel down and back up. Empty disables the schedule.
	BlankCron string `yaml:"blank" json:"blank"`
	WakeCron  string `yaml:"wake" json:"wake"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health and /metrics.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration wired for a
// Raspberry Pi with the panel on the default SPI port.
func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		Variant:  "pv13900als20c",
		LogLevel: "info",
		SPI: SPIConfig{
			Port:    "",
			SpeedHz: 2_000_000,
		},
		Pins: PinConfig{
			DC:    25,
			Reset: 27,
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Variant == "" {
		c.Variant = "pv13900als20c"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// ok
	default:
		c.LogLevel = "info"
	}
	if c.SPI.SpeedHz <= 0 {
		c.SPI.SpeedHz = 2_000_000
	}
	if c.Pins.DC == 0 {
		c.Pins.DC = 25
	}
	if c.Pins.Reset == 0 {
		c.Pins.Reset = 27
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".dsipanel-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
