package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/tvnav/pkg/idle"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/tvnav/config.toml
//  2. ~/.config/tvnav/config.toml
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader. Keys absent from
// the input keep their defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Platform: PlatformConfig{
			Kind: "auto",
		},
		Focus: FocusConfig{
			Epsilon:        1,
			CrossWeight:    2,
			RescanDebounce: Duration{150 * time.Millisecond},
			WarmupScans:    3,
			WarmupInterval: Duration{200 * time.Millisecond},
		},
		Idle: IdleConfig{
			Enabled: "auto",
			Timeout: Duration{idle.DefaultTimeout},
			Policy:  string(idle.KeepPlaying),
		},
		UI: UIConfig{
			Theme:   "default",
			Columns: 4,
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TVNAV_PLATFORM"); v != "" {
		cfg.Platform.Kind = v
	}
	if v := os.Getenv("TVNAV_USER_AGENT"); v != "" {
		cfg.Platform.UserAgent = v
	}
	if v := os.Getenv("TVNAV_IDLE_TIMEOUT"); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err == nil {
			cfg.Idle.Timeout = d
		}
	}
	if v := os.Getenv("TVNAV_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TVNAV_LOCALE"); v != "" {
		cfg.UI.Locale = v
	} else if cfg.UI.Locale == "" {
		cfg.UI.Locale = os.Getenv("LANG")
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "tvnav", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "tvnav", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
