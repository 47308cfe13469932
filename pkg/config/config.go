// Package config provides TOML-based configuration for tvnav.
package config

import (
	"fmt"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/tvnav/pkg/idle"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
)

// Config is the root configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Platform PlatformConfig `toml:"platform"`
	Focus    FocusConfig    `toml:"focus"`
	Idle     IdleConfig     `toml:"idle"`
	UI       UIConfig       `toml:"ui"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// GeneralConfig holds logging settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // debug, info, warn, error
	LogFile  string `toml:"log_file"`
}

// PlatformConfig selects the device family.
type PlatformConfig struct {
	Kind       string `toml:"kind"`        // auto, samsung, lg, web
	UserAgent  string `toml:"user_agent"`  // used when kind = auto
	KeymapFile string `toml:"keymap_file"` // YAML key code overrides
}

// FocusConfig tunes spatial navigation.
type FocusConfig struct {
	Epsilon        float64  `toml:"epsilon"`
	CrossWeight    float64  `toml:"cross_weight"`
	RescanDebounce Duration `toml:"rescan_debounce"`
	WarmupScans    int      `toml:"warmup_scans"`
	WarmupInterval Duration `toml:"warmup_interval"`
}

// IdleConfig configures the screensaver.
type IdleConfig struct {
	Enabled string   `toml:"enabled"` // auto, on, off
	Timeout Duration `toml:"timeout"`
	Policy  string   `toml:"policy"` // keep-playing, pause
}

// UIConfig configures the terminal host.
type UIConfig struct {
	Locale  string `toml:"locale"`
	Theme   string `toml:"theme"`
	Columns int    `toml:"columns"`
	Catalog string `toml:"catalog"` // station catalog YAML; empty = built-in
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	Listen string `toml:"listen"` // empty disables
}

// Duration wraps time.Duration with TOML-friendly string parsing, e.g.
// "150ms", "3m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Validate checks the configuration for values the app cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: general.log_level %q must be debug, info, warn or error", c.General.LogLevel)
	}
	if _, err := platform.Resolve(c.Platform.Kind, c.Platform.UserAgent); err != nil {
		return fmt.Errorf("config: platform.kind: %w", err)
	}
	if c.Focus.Epsilon < 0 {
		return fmt.Errorf("config: focus.epsilon must not be negative")
	}
	if c.Focus.CrossWeight <= 0 {
		return fmt.Errorf("config: focus.cross_weight must be positive")
	}
	if d := c.Focus.RescanDebounce.Duration; d < 50*time.Millisecond || d > 500*time.Millisecond {
		return fmt.Errorf("config: focus.rescan_debounce %v outside 50ms..500ms", d)
	}
	if c.Focus.WarmupScans < 0 {
		return fmt.Errorf("config: focus.warmup_scans must not be negative")
	}
	if _, err := c.IdleEnabled(false); err != nil {
		return err
	}
	if c.Idle.Timeout.Duration <= 0 {
		return fmt.Errorf("config: idle.timeout must be positive")
	}
	if _, err := idle.ParsePolicy(c.Idle.Policy); err != nil {
		return fmt.Errorf("config: idle.policy: %w", err)
	}
	if c.UI.Columns < 1 || c.UI.Columns > 8 {
		return fmt.Errorf("config: ui.columns %d outside 1..8", c.UI.Columns)
	}
	return nil
}

// IdleEnabled resolves idle.enabled. "auto" follows the platform's
// certification profile, given as screensaverRequired.
func (c *Config) IdleEnabled(screensaverRequired bool) (bool, error) {
	switch strings.ToLower(c.Idle.Enabled) {
	case "", "auto":
		return screensaverRequired, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("config: idle.enabled %q must be auto, on or off", c.Idle.Enabled)
}
