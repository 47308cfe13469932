// Package script replays remote-control sessions headlessly. A script is
// a YAML list of steps (key presses, route changes, waits, lifecycle
// events and expectations) run against the app on a manual clock, so a
// three-minute screensaver timeout takes no wall time.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/tvnav/pkg/config"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
)

// Script is a parsed script file.
type Script struct {
	Name string `yaml:"name"`

	// Optional overrides of the loaded configuration.
	Platform    string          `yaml:"platform"`
	Locale      string          `yaml:"locale"`
	Screensaver string          `yaml:"screensaver"` // auto, on, off
	IdleTimeout config.Duration `yaml:"idle_timeout"`
	IdlePolicy  string          `yaml:"idle_policy"`
	Columns     int             `yaml:"columns"`

	Steps []Step `yaml:"steps"`
}

// Step is one scripted action or expectation. Exactly one field is set.
type Step struct {
	Key       string          `yaml:"key"`
	Repeat    int             `yaml:"repeat"` // applies to key
	Code      *int            `yaml:"code"`
	Click     string          `yaml:"click"`
	Route     string          `yaml:"route"`
	Back      bool            `yaml:"back"`
	Wait      config.Duration `yaml:"wait"`
	Lifecycle string          `yaml:"lifecycle"` // hidden, visible

	ExpectFocus string `yaml:"expect_focus"`
	ExpectRoute string `yaml:"expect_route"`
	ExpectState string `yaml:"expect_state"`
}

// States accepted by expect_state.
var states = []string{"playing", "paused", "stopped", "idle", "active", "exited"}

// Load reads a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a script.
func Decode(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("script: empty script")
		}
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("script: step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	n := 0
	for _, set := range []bool{
		s.Key != "", s.Code != nil, s.Click != "", s.Route != "", s.Back,
		s.Wait.Duration > 0, s.Lifecycle != "",
		s.ExpectFocus != "", s.ExpectRoute != "", s.ExpectState != "",
	} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("want exactly one action, got %d", n)
	}
	if s.Repeat != 0 && s.Key == "" {
		return fmt.Errorf("repeat only applies to key")
	}
	if s.Key != "" {
		if _, err := keys.ParseKey(s.Key); err != nil {
			return err
		}
	}
	switch s.Lifecycle {
	case "", "hidden", "visible":
	default:
		return fmt.Errorf("lifecycle %q must be hidden or visible", s.Lifecycle)
	}
	if s.ExpectState != "" {
		want := strings.ToLower(s.ExpectState)
		for _, st := range states {
			if st == want {
				return nil
			}
		}
		return fmt.Errorf("expect_state %q must be one of %s", s.ExpectState, strings.Join(states, ", "))
	}
	return nil
}

// String describes the step for reports.
func (s Step) String() string {
	switch {
	case s.Key != "":
		if s.Repeat > 1 {
			return fmt.Sprintf("key %s ×%d", strings.ToUpper(s.Key), s.Repeat)
		}
		return "key " + strings.ToUpper(s.Key)
	case s.Code != nil:
		return fmt.Sprintf("code %d", *s.Code)
	case s.Click != "":
		return "click " + s.Click
	case s.Route != "":
		return "route " + s.Route
	case s.Back:
		return "back"
	case s.Wait.Duration > 0:
		return "wait " + s.Wait.Duration.String()
	case s.Lifecycle != "":
		return "lifecycle " + s.Lifecycle
	case s.ExpectFocus != "":
		return "expect focus " + s.ExpectFocus
	case s.ExpectRoute != "":
		return "expect route " + s.ExpectRoute
	case s.ExpectState != "":
		return "expect state " + s.ExpectState
	}
	return "noop"
}

// apply returns a copy of cfg with the script's overrides.
func (s *Script) apply(cfg *config.Config) *config.Config {
	out := *cfg
	if s.Platform != "" {
		out.Platform.Kind = s.Platform
	}
	if s.Locale != "" {
		out.UI.Locale = s.Locale
	}
	if s.Screensaver != "" {
		out.Idle.Enabled = s.Screensaver
	}
	if s.IdleTimeout.Duration > 0 {
		out.Idle.Timeout = s.IdleTimeout
	}
	if s.IdlePolicy != "" {
		out.Idle.Policy = s.IdlePolicy
	}
	if s.Columns > 0 {
		out.UI.Columns = s.Columns
	}
	return &out
}
