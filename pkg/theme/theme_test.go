package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinsRegistered(t *testing.T) {
	want := []string{"default", "gruvbox", "high-contrast", "nord"}
	got := Names()
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("theme %q not registered (have %v)", name, got)
		}
	}
}

func TestBuiltinsComplete(t *testing.T) {
	for _, name := range []string{"default", "gruvbox", "high-contrast", "nord"} {
		th := Get(name)
		for key, v := range map[string]string{
			"Foreground": th.Foreground,
			"Border":     th.Border,
			"Focus":      th.Focus,
			"Overlay":    th.OverlayBackground,
			"Clock":      th.Clock,
		} {
			if !hexColor.MatchString(v) {
				t.Errorf("%s.%s = %q", name, key, v)
			}
		}
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	if got := Get("no-such-theme").Name; got != "default" {
		t.Errorf("Get(unknown).Name = %q, want default", got)
	}
	if got := Get("NORD").Name; got != "nord" {
		t.Errorf("Get is case sensitive: %q", got)
	}
}

func TestLoadFromTOMLExtends(t *testing.T) {
	th, err := LoadFromTOML([]byte(`
name = "lounge"
extends = "nord"

[card]
focus = "#ff00aa"
`))
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if th.Focus != "#ff00aa" {
		t.Errorf("Focus = %q", th.Focus)
	}
	if th.Background != Get("nord").Background {
		t.Errorf("Background not inherited from nord: %q", th.Background)
	}
}

func TestLoadFromTOMLErrors(t *testing.T) {
	tests := map[string]string{
		"no name":         `extends = "nord"`,
		"unknown extends": "name = \"x\"\nextends = \"nope\"\n",
		"bad colour":      "name = \"x\"\n[card]\nfocus = \"red\"\n",
		"bad toml":        "name = ",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFromTOML([]byte(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFileRegisters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	if err := os.WriteFile(path, []byte("name = \"Mine\"\n[overlay]\nclock = \"#123456\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	th, ok := Lookup("mine")
	if !ok || th.Clock != "#123456" {
		t.Errorf("Lookup(mine) = %+v, %v", th, ok)
	}
}

func TestStylesRender(t *testing.T) {
	s := Get("default").Styles()
	if s.Card.Render("x") == "" || s.Focused.Render("x") == "" {
		t.Error("styles render empty output")
	}
}
