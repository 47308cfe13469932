package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// tomlTheme is the on-disk form of a Theme.
type tomlTheme struct {
	Name    string      `toml:"name"`
	Extends string      `toml:"extends"`
	Base    tomlBase    `toml:"base"`
	Card    tomlCard    `toml:"card"`
	Overlay tomlOverlay `toml:"overlay"`
	Help    tomlHelp    `toml:"help"`
	Playing string      `toml:"playing"`
}

type tomlBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type tomlCard struct {
	Border    string `toml:"border"`
	Focus     string `toml:"focus"`
	FocusText string `toml:"focus_text"`
	Disabled  string `toml:"disabled"`
}

type tomlOverlay struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Clock      string `toml:"clock"`
}

type tomlHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a theme definition. Colours left empty are inherited
// from the theme named by "extends" (default when unset).
func LoadFromTOML(data []byte) (Theme, error) {
	var tt tomlTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}
	if tt.Name == "" {
		return Theme{}, fmt.Errorf("theme: name is required")
	}

	base := Get("default")
	if tt.Extends != "" {
		b, ok := Lookup(tt.Extends)
		if !ok {
			return Theme{}, fmt.Errorf("theme: %s extends unknown theme %q", tt.Name, tt.Extends)
		}
		base = b
	}

	t := base
	t.Name = tt.Name
	fields := []struct {
		dst *string
		src string
		key string
	}{
		{&t.Background, tt.Base.Background, "base.background"},
		{&t.Foreground, tt.Base.Foreground, "base.foreground"},
		{&t.Dim, tt.Base.Dim, "base.dim"},
		{&t.Accent, tt.Base.Accent, "base.accent"},
		{&t.Border, tt.Card.Border, "card.border"},
		{&t.Focus, tt.Card.Focus, "card.focus"},
		{&t.FocusText, tt.Card.FocusText, "card.focus_text"},
		{&t.Disabled, tt.Card.Disabled, "card.disabled"},
		{&t.OverlayBackground, tt.Overlay.Background, "overlay.background"},
		{&t.OverlayForeground, tt.Overlay.Foreground, "overlay.foreground"},
		{&t.Clock, tt.Overlay.Clock, "overlay.clock"},
		{&t.HelpKey, tt.Help.Key, "help.key"},
		{&t.HelpDesc, tt.Help.Desc, "help.desc"},
		{&t.Playing, tt.Playing, "playing"},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		if !hexColor.MatchString(f.src) {
			return Theme{}, fmt.Errorf("theme: %s: %s = %q is not a #rrggbb colour", tt.Name, f.key, f.src)
		}
		*f.dst = f.src
	}
	return t, nil
}

// LoadFile reads a TOML theme from path and registers it.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: %w", err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	Register(t)
	return t, nil
}
