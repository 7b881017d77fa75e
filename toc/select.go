package toc

import (
	"math"
	"sort"
)

// ScrollState is the viewport position at one tick, in CSS pixels.
type ScrollState struct {
	Y              float64
	ViewportHeight float64
	DocumentHeight float64
}

// AtTop reports whether nothing has been scrolled past yet.
func (s ScrollState) AtTop() bool {
	return s.Y < 1
}

// AtBottom reports whether the viewport rests within 1px of the end.
func (s ScrollState) AtBottom() bool {
	return math.Abs(s.Y+s.ViewportHeight-s.DocumentHeight) < 1
}

// Position is the absolute document offset of an anchor at one tick. A NaN
// Top marks a heading that is out of the layout flow.
type Position struct {
	Link string
	Top  float64
}

// Select picks the active link. It returns false when no heading should be
// highlighted. offset is the height of the sticky area above the content.
func Select(positions []Position, s ScrollState, offset float64) (string, bool) {
	valid := make([]Position, 0, len(positions))
	for _, p := range positions {
		if !math.IsNaN(p.Top) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 || s.AtTop() {
		return "", false
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Top < valid[j].Top })
	if s.AtBottom() {
		return valid[len(valid)-1].Link, true
	}

	link, ok := "", false
	for _, p := range valid {
		if p.Top > s.Y+offset {
			break
		}
		link, ok = p.Link, true
	}
	return link, ok
}

var nan = math.NaN()
