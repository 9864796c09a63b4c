package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/periph/conn/physic"

	"github.com/cgxeiji/pcf8563"
)

// Config is the YAML configuration of the tool.
type Config struct {
	// Bus is the periph.io bus name ("/dev/i2c-1", "I2C1", "1"); empty
	// selects the first available bus.
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`
	// SpeedHz of 0 leaves the bus clock untouched.
	SpeedHz int64 `yaml:"speed_hz"`

	PollIntervalMs int `yaml:"poll_interval_ms"`
	WaitTimeoutMs  int `yaml:"wait_timeout_ms"`

	// ClockOut, when set, is applied on start: off, 1hz, 32hz, 1khz, 32khz.
	ClockOut string `yaml:"clock_out"`
}

func defaultConfig() *Config {
	return &Config{
		Address:        pcf8563.Addr,
		PollIntervalMs: 250,
		WaitTimeoutMs:  60000,
	}
}

// Load reads the config at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg.Address == 0 || cfg.Address > 0x7F {
		return fmt.Errorf("address %#x is not a 7-bit I2C address", cfg.Address)
	}
	if cfg.SpeedHz < 0 {
		return fmt.Errorf("speed_hz must not be negative, got %d", cfg.SpeedHz)
	}
	if cfg.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", cfg.PollIntervalMs)
	}
	if cfg.WaitTimeoutMs <= 0 {
		return fmt.Errorf("wait_timeout_ms must be positive, got %d", cfg.WaitTimeoutMs)
	}
	if cfg.ClockOut != "" {
		if _, err := clockOutSetting(cfg.ClockOut); err != nil {
			return fmt.Errorf("clock_out: %w", err)
		}
	}
	return nil
}

func (c *Config) Speed() physic.Frequency {
	return physic.Frequency(c.SpeedHz) * physic.Hertz
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func (c *Config) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutMs) * time.Millisecond
}

var clockOutSettings = map[string]byte{
	"off":   pcf8563.ClockOutDisable,
	"32khz": pcf8563.ClockOut32kHz,
	"1khz":  pcf8563.ClockOut1kHz,
	"32hz":  pcf8563.ClockOut32Hz,
	"1hz":   pcf8563.ClockOut1Hz,
}

func clockOutSetting(name string) (byte, error) {
	v, ok := clockOutSettings[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown clock out setting %q", name)
	}
	return v, nil
}

var timerSettings = map[string]uint16{
	"off":  pcf8563.TimerDisable,
	"4khz": pcf8563.Timer4kHz,
	"64hz": pcf8563.Timer64Hz,
	"1s":   pcf8563.Timer1s,
	"60s":  pcf8563.Timer60s,
}

func timerSetting(name string) (uint16, error) {
	v, ok := timerSettings[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown timer setting %q", name)
	}
	return v, nil
}
