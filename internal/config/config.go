// Package config loads the emulator settings from a TOML file.
package config

import (
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"

	"github.com/thelolagemann/lr35902/internal/cpu"
)

// DefaultFileMode is used when saving a config file.
const DefaultFileMode = os.FileMode(0644)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Log       LogConfig       `toml:"log"`
	Monitor   MonitorConfig   `toml:"monitor"`
}

type EmulationConfig struct {
	CallHistory     bool `toml:"call_history"`
	CallHistorySize int  `toml:"call_history_size"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type MonitorConfig struct {
	Addr       string `toml:"addr"`
	IntervalMS int    `toml:"interval_ms"`
}

// HistorySize returns the call history capacity, 0 when disabled.
func (c EmulationConfig) HistorySize() int {
	if !c.CallHistory {
		return 0
	}
	if c.CallHistorySize <= 0 {
		return cpu.DefaultHistorySize
	}
	return c.CallHistorySize
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Emulation: EmulationConfig{
			CallHistory:     true,
			CallHistorySize: cpu.DefaultHistorySize,
		},
		Log: LogConfig{
			Level: "info",
		},
		Monitor: MonitorConfig{
			Addr:       "127.0.0.1:8090",
			IntervalMS: 100,
		},
	}
}

// Load decodes the file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), errors.Wrapf(err, "decode %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, DefaultFileMode)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}
