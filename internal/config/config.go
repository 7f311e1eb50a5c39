// Package config loads the clickd configuration file.
//
// The file is TOML with the recognized keys sound, volume, buttons, devices
// and tray; unrecognized keys are ignored and missing keys take the defaults
// below. It is searched for on the command line first and in
// $XDG_CONFIG_HOME/clickd/config.toml second.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/BurntSushi/xdg"
)

type Config struct {
	// Sound is the path to the WAV file to play. Empty means the built-in
	// click.
	Sound string `toml:"sound"`
	// Volume is the playback volume in 0.0-1.0.
	Volume float64 `toml:"volume"`
	// Buttons are the names of the buttons that trigger playback.
	Buttons []string `toml:"buttons"`
	// Devices optionally restricts monitoring to devices with these exact
	// names.
	Devices []string `toml:"devices"`
	// Tray controls whether the system-tray icon is shown.
	Tray bool `toml:"tray"`
}

func Default() Config {
	return Config{
		Volume:  1.0,
		Buttons: []string{"left"},
		Tray:    true,
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover resolves the effective configuration: the explicit path when
// given, else the XDG config file when present, else the defaults. A file
// that exists but fails to load is an error in both cases.
func Discover(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}

	paths := xdg.Paths{XDGSuffix: "clickd"}
	xdgPath, err := paths.ConfigFile("config.toml")
	if err != nil {
		return Default(), nil
	}
	return Load(xdgPath)
}

func (c *Config) validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be within 0.0-1.0, got %v", c.Volume)
	}
	if len(c.Buttons) == 0 {
		return fmt.Errorf("buttons must not be empty")
	}
	return nil
}
