// Package stations holds the radio catalog shown by the front end. The
// catalog is loaded from YAML; a built-in demo catalog is embedded.
package stations

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Station is one playable radio stream.
type Station struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	URL     string   `yaml:"url"`
	Country string   `yaml:"country"`
	Genres  []string `yaml:"genres"`
	Bitrate int      `yaml:"bitrate"`
}

// Genre groups stations under a slug used in routes.
type Genre struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
}

// Catalog is an immutable set of genres and stations.
type Catalog struct {
	Genres   []Genre   `yaml:"genres"`
	Stations []Station `yaml:"stations"`
}

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the embedded demo catalog.
func Demo() *Catalog {
	c, err := Decode(bytes.NewReader(demoYAML))
	if err != nil {
		panic(fmt.Sprintf("stations: embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stations: open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates catalog YAML.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("stations: decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Stations))
	for _, s := range c.Stations {
		if s.ID == "" {
			return fmt.Errorf("stations: station %q has no id", s.Name)
		}
		if seen[s.ID] {
			return fmt.Errorf("stations: duplicate station id %q", s.ID)
		}
		seen[s.ID] = true
	}
	for _, g := range c.Genres {
		if g.Slug == "" || strings.Contains(g.Slug, "/") {
			return fmt.Errorf("stations: invalid genre slug %q", g.Slug)
		}
	}
	return nil
}

// Genre returns the genre with the given slug.
func (c *Catalog) Genre(slug string) (Genre, bool) {
	for _, g := range c.Genres {
		if g.Slug == slug {
			return g, true
		}
	}
	return Genre{}, false
}

// Station returns the station with the given id.
func (c *Catalog) Station(id string) (Station, bool) {
	for _, s := range c.Stations {
		if s.ID == id {
			return s, true
		}
	}
	return Station{}, false
}

// ByGenre returns the stations tagged with slug, sorted by name.
func (c *Catalog) ByGenre(slug string) []Station {
	var out []Station
	for _, s := range c.Stations {
		for _, g := range s.Genres {
			if g == slug {
				out = append(out, s)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Featured returns up to n stations in catalog order.
func (c *Catalog) Featured(n int) []Station {
	if n > len(c.Stations) {
		n = len(c.Stations)
	}
	return c.Stations[:n]
}
