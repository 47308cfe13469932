// Package keys maps physical remote-control key codes to logical keys and
// routes key events to the handler registered for the current page.
package keys

import (
	"fmt"
	"sort"
	"strings"
)

// Key is a logical remote-control key.
type Key string

const (
	Up          Key = "UP"
	Down        Key = "DOWN"
	Left        Key = "LEFT"
	Right       Key = "RIGHT"
	Enter       Key = "ENTER"
	Return      Key = "RETURN"
	Exit        Key = "EXIT"
	Red         Key = "RED"
	Green       Key = "GREEN"
	Yellow      Key = "YELLOW"
	Blue        Key = "BLUE"
	Play        Key = "PLAY"
	Pause       Key = "PAUSE"
	PlayPause   Key = "PLAY_PAUSE"
	Stop        Key = "STOP"
	FastForward Key = "FAST_FORWARD"
	Rewind      Key = "REWIND"
	ChannelUp   Key = "CHANNEL_UP"
	ChannelDown Key = "CHANNEL_DOWN"
	Info        Key = "INFO"
)

// AllKeys lists every logical key in a stable order.
var AllKeys = []Key{
	Up, Down, Left, Right, Enter, Return, Exit,
	Red, Green, Yellow, Blue,
	Play, Pause, PlayPause, Stop, FastForward, Rewind,
	ChannelUp, ChannelDown, Info,
}

// ParseKey parses a logical key name, case-insensitively.
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("keys: unknown key %q", s)
}

// IsNavigation reports whether k is one of the four arrow keys.
func (k Key) IsNavigation() bool {
	switch k {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Map is a platform's key table. A logical key may be produced by several
// codes (e.g. RETURN arrives as Backspace in a browser and as the vendor
// back code on a TV); a code belongs to exactly one logical key. A Map is
// immutable once built.
type Map struct {
	name   string
	codes  map[Key][]int
	lookup map[int]Key
}

// NewMap builds a Map from a table. It fails if a code is claimed by two
// logical keys, which would make a key press ambiguous.
func NewMap(name string, table map[Key][]int) (*Map, error) {
	m := &Map{
		name:   name,
		codes:  make(map[Key][]int, len(table)),
		lookup: make(map[int]Key),
	}
	for k, codes := range table {
		for _, c := range codes {
			if other, ok := m.lookup[c]; ok && other != k {
				return nil, fmt.Errorf("keys: %s: code %d bound to both %s and %s", name, c, other, k)
			}
			m.lookup[c] = k
		}
		m.codes[k] = append([]int(nil), codes...)
	}
	return m, nil
}

func mustMap(name string, table map[Key][]int) *Map {
	m, err := NewMap(name, table)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the platform name the map was built for.
func (m *Map) Name() string { return m.name }

// Lookup returns the logical key for a code.
func (m *Map) Lookup(code int) (Key, bool) {
	k, ok := m.lookup[code]
	return k, ok
}

// Is reports whether code is any of the codes bound to k.
func (m *Map) Is(code int, k Key) bool {
	got, ok := m.lookup[code]
	return ok && got == k
}

// Code returns the primary code for k, used when synthesising key events.
func (m *Map) Code(k Key) (int, bool) {
	codes := m.codes[k]
	if len(codes) == 0 {
		return 0, false
	}
	return codes[0], true
}

// Table returns a copy of the map's table with codes sorted, for display.
func (m *Map) Table() map[Key][]int {
	out := make(map[Key][]int, len(m.codes))
	for k, codes := range m.codes {
		c := append([]int(nil), codes...)
		sort.Ints(c)
		out[k] = c
	}
	return out
}

// with returns a new Map with overrides replacing whole entries.
func (m *Map) with(overrides map[Key][]int) (*Map, error) {
	table := make(map[Key][]int, len(m.codes))
	for k, codes := range m.codes {
		table[k] = codes
	}
	for k, codes := range overrides {
		table[k] = codes
	}
	return NewMap(m.name, table)
}
