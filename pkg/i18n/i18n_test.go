package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNewMatchesLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"sv_SE.UTF-8", language.Swedish},
		{"de-AT", language.German},
		{"fr-FR, de;q=0.8", language.German},
		{"ja", language.English},
		{"", language.English},
		{"C", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			got := New(tt.locale).Language()
			base, _ := got.Base()
			wantBase, _ := tt.want.Base()
			if base != wantBase {
				t.Errorf("New(%q).Language() = %v, want %v", tt.locale, got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	sv := New("sv")
	if got := sv.T("nav.home"); got != "Hem" {
		t.Errorf("T(nav.home) = %q, want Hem", got)
	}
	if got := New("en").T("nav.home"); got != "Home" {
		t.Errorf("T(nav.home) = %q, want Home", got)
	}
}

func TestUnresolvedKeyReturnsKey(t *testing.T) {
	if got := New("en").T("no.such.key"); got != "no.such.key" {
		t.Errorf("T = %q, want the key", got)
	}
	var nilT *Translator
	if got := nilT.T("x"); got != "x" {
		t.Errorf("nil translator T = %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en := catalogs[language.English]
	for _, tag := range Languages() {
		for key := range en {
			if _, ok := catalogs[tag][key]; !ok {
				t.Errorf("%v catalog missing %q", tag, key)
			}
		}
	}
}

func TestParseFlattens(t *testing.T) {
	flat, err := Parse([]byte("[a]\nb = \"c\"\n[a.d]\ne = 1\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if flat["a.b"] != "c" || flat["a.d.e"] != "1" {
		t.Errorf("flat = %v", flat)
	}
	if _, err := Parse([]byte("[[")); err == nil {
		t.Error("expected parse error")
	}
}
