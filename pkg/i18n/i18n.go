// Package i18n looks up UI strings by dotted key. Catalogs are embedded
// TOML files, one per language; the best catalog for the requested locale
// is picked with golang.org/x/text/language matching.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed catalogs/*.toml
var catalogFS embed.FS

// Translator resolves keys for one language, falling back to English and
// finally to the key itself. It never fails and never blocks.
type Translator struct {
	tag      language.Tag
	strings  map[string]string
	fallback map[string]string
}

var (
	supported []language.Tag
	catalogs  = map[language.Tag]map[string]string{}
)

func init() {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		panic(fmt.Sprintf("i18n: read catalogs: %v", err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	// English first so the matcher falls back to it.
	sort.SliceStable(names, func(i, j int) bool { return names[i] == "en.toml" && names[j] != "en.toml" })

	for _, name := range names {
		data, err := catalogFS.ReadFile(path.Join("catalogs", name))
		if err != nil {
			panic(fmt.Sprintf("i18n: read %s: %v", name, err))
		}
		flat, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("i18n: %s: %v", name, err))
		}
		tag := language.MustParse(strings.TrimSuffix(name, ".toml"))
		supported = append(supported, tag)
		catalogs[tag] = flat
	}
}

// Parse flattens a TOML catalog into dotted keys ("nav.home").
func Parse(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: parse catalog: %w", err)
	}
	flat := make(map[string]string)
	flatten("", raw, flat)
	return flat, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// New returns a Translator for locale, which may be a BCP 47 tag, a POSIX
// locale ("sv_SE.UTF-8") or an Accept-Language list. Unknown locales get
// English.
func New(locale string) *Translator {
	matcher := language.NewMatcher(supported)
	_, idx := language.MatchStrings(matcher, normalizeLocale(locale))
	tag := supported[idx]
	return &Translator{
		tag:      tag,
		strings:  catalogs[tag],
		fallback: catalogs[language.English],
	}
}

func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Language returns the catalog language in use.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T returns the string for key, or key itself when no catalog has it.
func (t *Translator) T(key string) string {
	if t == nil {
		return key
	}
	if s, ok := t.strings[key]; ok {
		return s
	}
	if s, ok := t.fallback[key]; ok {
		return s
	}
	return key
}

// Tf formats the string for key with args.
func (t *Translator) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

// Languages lists the languages with a catalog.
func Languages() []language.Tag {
	return append([]language.Tag(nil), supported...)
}
