package keys

import (
	"strings"
	"testing"
)

func TestPlatformMapsDistinguishExit(t *testing.T) {
	for _, m := range []*Map{Samsung, LG, Web} {
		exit, ok := m.Code(Exit)
		if !ok {
			t.Errorf("%s: no EXIT code", m.Name())
			continue
		}
		k, _ := m.Lookup(exit)
		if k != Exit || k.IsNavigation() {
			t.Errorf("%s: EXIT code %d resolves to %s", m.Name(), exit, k)
		}
		for _, nav := range []Key{Up, Down, Left, Right} {
			if m.Is(exit, nav) {
				t.Errorf("%s: EXIT code collides with %s", m.Name(), nav)
			}
		}
	}
}

func TestReturnMatchesAnyOfItsCodes(t *testing.T) {
	for _, code := range []int{8, 10009, 461} {
		if !Web.Is(code, Return) {
			t.Errorf("web: code %d should be RETURN", code)
		}
	}
	if Web.Is(13, Return) {
		t.Error("web: ENTER must not be RETURN")
	}
	if Samsung.Is(461, Return) {
		t.Error("samsung: 461 is not a Tizen back code")
	}
	if !Samsung.Is(10009, Return) || !LG.Is(461, Return) {
		t.Error("vendor back codes missing")
	}
}

func TestForPlatformFallsBackToWeb(t *testing.T) {
	if ForPlatform("samsung") != Samsung || ForPlatform("lg") != LG {
		t.Error("ForPlatform returned wrong table")
	}
	if ForPlatform("toaster") != Web {
		t.Error("unknown platform should fall back to web")
	}
}

func TestNewMapRejectsAmbiguousCode(t *testing.T) {
	_, err := NewMap("bad", map[Key][]int{Up: {1}, Down: {1}})
	if err == nil {
		t.Fatal("expected error for code bound to two keys")
	}
}

func TestTableReturnsSortedCopy(t *testing.T) {
	table := Web.Table()
	codes := table[Return]
	if len(codes) == 0 {
		t.Fatal("RETURN has no codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Errorf("codes not sorted: %v", codes)
		}
	}
	codes[0] = 9999
	if !Web.Is(8, Return) || Web.Table()[Return][0] == 9999 {
		t.Error("Table must not expose internal state")
	}
}

func TestParseKey(t *testing.T) {
	if k, err := ParseKey(" play_pause "); err != nil || k != PlayPause {
		t.Errorf("ParseKey = %q, %v", k, err)
	}
	if _, err := ParseKey("MENU"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestOverridesApply(t *testing.T) {
	of, err := DecodeOverrides(strings.NewReader(`
samsung:
  RETURN: [10009, 88]
lg:
  exit: [1001]
`))
	if err != nil {
		t.Fatalf("DecodeOverrides: %v", err)
	}

	m, err := of.Apply(Samsung)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !m.Is(88, Return) || !m.Is(10009, Return) {
		t.Error("override codes not applied")
	}
	if Samsung.Is(88, Return) {
		t.Error("base map must not be mutated")
	}

	web, err := of.Apply(Web)
	if err != nil || web != Web {
		t.Error("platform without overrides should return the base map")
	}
}

func TestOverridesRejectUnknownKeyAndCollisions(t *testing.T) {
	of := OverrideFile{"web": {"MENU": {1}}}
	if _, err := of.Apply(Web); err == nil {
		t.Error("expected error for unknown key")
	}
	of = OverrideFile{"web": {"EXIT": {13}}}
	if _, err := of.Apply(Web); err == nil {
		t.Error("expected error when EXIT takes ENTER's code")
	}
}

func TestDecodeOverridesEmpty(t *testing.T) {
	of, err := DecodeOverrides(strings.NewReader(""))
	if err != nil || of != nil {
		t.Errorf("empty input: %v, %v", of, err)
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	of, err := LoadOverrides(t.TempDir() + "/nope.yaml")
	if err != nil || of != nil {
		t.Errorf("missing file: %v, %v", of, err)
	}
}
