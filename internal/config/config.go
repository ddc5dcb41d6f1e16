package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	// TabWidth is the display tab stop.
	TabWidth int `toml:"tab-width"`
	// MessageTimeout is how many seconds a transient status message
	// stays visible. Zero keeps messages until replaced.
	MessageTimeout int `toml:"message-timeout"`
}

type LogOptions struct {
	Debug bool `toml:"debug"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Log    LogOptions    `toml:"log"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:       4,
			MessageTimeout: 5,
		},
	}
}

// ConfigPath returns the location of the user config file.
func ConfigPath() (string, error) {
	if v := os.Getenv("QUECTO_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "config.toml"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "quecto", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quecto", "config.toml"), nil
}

// Load reads the user config over the defaults. A missing file is not
// an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), err
	}
	if cfg.Editor.TabWidth < 1 {
		cfg.Editor.TabWidth = Default().Editor.TabWidth
	}
	if cfg.Editor.MessageTimeout < 0 {
		cfg.Editor.MessageTimeout = 0
	}
	return cfg, nil
}
