package keys

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OverrideFile is the YAML layout of a key map override file:
//
//	samsung:
//	  RETURN: [10009, 88]
//	web:
//	  EXIT: [27, 81]
//
// Each listed key replaces the platform's built-in codes for that key.
type OverrideFile map[string]map[string][]int

// LoadOverrides reads an override file. A missing file yields no overrides.
func LoadOverrides(path string) (OverrideFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("keys: open overrides: %w", err)
	}
	defer f.Close()
	return DecodeOverrides(f)
}

// DecodeOverrides parses override YAML from r.
func DecodeOverrides(r io.Reader) (OverrideFile, error) {
	var of OverrideFile
	if err := yaml.NewDecoder(r).Decode(&of); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("keys: decode overrides: %w", err)
	}
	return of, nil
}

// Apply returns base with the overrides for its platform merged in. base
// itself is left untouched.
func (of OverrideFile) Apply(base *Map) (*Map, error) {
	entries := of[base.Name()]
	if len(entries) == 0 {
		return base, nil
	}
	overrides := make(map[Key][]int, len(entries))
	for name, codes := range entries {
		k, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		overrides[k] = codes
	}
	return base.with(overrides)
}
