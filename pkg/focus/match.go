package focus

import (
	"fmt"
	"math"
	"strings"
)

// Direction is a compass direction of travel.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{Up: "up", Down: "down", Left: "left", Right: "right"}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// ParseDirection parses "up", "down", "left" or "right" (any case).
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("focus: unknown direction %q", s)
}

// Matcher scores candidates for directional navigation.
//
// A candidate qualifies only when its center lies strictly beyond the
// origin's center plus Epsilon along the direction of travel. Its score is
// the primary-axis distance plus CrossWeight times the cross-axis distance;
// the lowest score wins and ties keep the earlier node in set order.
type Matcher struct {
	Epsilon     float64
	CrossWeight float64
}

// DefaultMatcher uses a one-unit tolerance and doubles the cross-axis cost,
// so an aligned element further away beats a diagonal one close by.
var DefaultMatcher = Matcher{Epsilon: 1, CrossWeight: 2}

// FindBestMatch runs DefaultMatcher.
func FindBestMatch(origin *Node, dir Direction, set []*Node) *Node {
	return DefaultMatcher.FindBestMatch(origin, dir, set)
}

// FindBestMatch returns the best node in set lying in direction dir from
// origin, or nil when none qualifies. There is no wrap-around and no
// diagonal fallback.
func (m Matcher) FindBestMatch(origin *Node, dir Direction, set []*Node) *Node {
	if origin == nil {
		return nil
	}
	ox, oy := origin.Box.Center()

	var best *Node
	bestScore := math.Inf(1)
	for _, n := range set {
		if n == nil || n == origin || n.ID == origin.ID || !n.Enabled() {
			continue
		}
		cx, cy := n.Box.Center()
		primary, cross, ok := m.axes(dir, ox, oy, cx, cy)
		if !ok {
			continue
		}
		score := primary + m.CrossWeight*cross
		if score < bestScore {
			best, bestScore = n, score
		}
	}
	return best
}

// axes returns the distances along and across the direction of travel, and
// whether the candidate lies strictly on the requested side.
func (m Matcher) axes(dir Direction, ox, oy, cx, cy float64) (primary, cross float64, ok bool) {
	switch dir {
	case Up:
		return oy - cy, math.Abs(cx - ox), cy < oy-m.Epsilon
	case Down:
		return cy - oy, math.Abs(cx - ox), cy > oy+m.Epsilon
	case Left:
		return ox - cx, math.Abs(cy - oy), cx < ox-m.Epsilon
	case Right:
		return cx - ox, math.Abs(cy - oy), cx > ox+m.Epsilon
	}
	return 0, 0, false
}
