package main

import (
	"fmt"
	"io"
	"strings"

	"gitlab.com/tinyland/lab/tvnav/pkg/config"
	"gitlab.com/tinyland/lab/tvnav/pkg/i18n"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
	"gitlab.com/tinyland/lab/tvnav/pkg/theme"
)

// list prints the themes, locales or remote key codes available to cfg.
func list(w io.Writer, what string, cfg *config.Config) error {
	switch what {
	case "themes":
		for _, name := range theme.Names() {
			marker := "  "
			if name == strings.ToLower(cfg.UI.Theme) {
				marker = "* "
			}
			fmt.Fprintln(w, marker+name)
		}
	case "locales":
		for _, tag := range i18n.Languages() {
			fmt.Fprintln(w, tag.String())
		}
	case "keys":
		m, err := resolveKeyMap(cfg)
		if err != nil {
			return err
		}
		table := m.Table()
		fmt.Fprintf(w, "# %s\n", m.Name())
		for _, k := range keys.AllKeys {
			codes, ok := table[k]
			if !ok {
				continue
			}
			parts := make([]string, len(codes))
			for i, c := range codes {
				parts[i] = fmt.Sprint(c)
			}
			fmt.Fprintf(w, "%-13s %s\n", k, strings.Join(parts, ", "))
		}
	default:
		return fmt.Errorf("unknown list %q (want themes, locales or keys)", what)
	}
	return nil
}

func resolveKeyMap(cfg *config.Config) (*keys.Map, error) {
	kind, err := platform.Resolve(cfg.Platform.Kind, cfg.Platform.UserAgent)
	if err != nil {
		return nil, err
	}
	m := keys.ForPlatform(string(kind))
	if cfg.Platform.KeymapFile == "" {
		return m, nil
	}
	of, err := keys.LoadOverrides(cfg.Platform.KeymapFile)
	if err != nil {
		return nil, err
	}
	return of.Apply(m)
}
