package toc

import (
	"math"
	"testing"
)

func TestSelectBoundaries(t *testing.T) {
	positions := []Position{
		{Link: "#intro", Top: 0},
		{Link: "#usage", Top: 100},
		{Link: "#faq", Top: 250},
	}
	const offset = 20
	const viewport, document = 400.0, 1000.0
	bottom := document - viewport

	tests := []struct {
		name   string
		y      float64
		want   string
		wantOK bool
	}{
		{"top of page", 0, "", false},
		{"just below top", 1, "#intro", true},
		{"past second heading", 130, "#usage", true},
		{"offset reaches heading", 80, "#usage", true},
		{"offset short of heading", 79, "#intro", true},
		{"past last heading", 300, "#faq", true},
		{"bottom of page", bottom, "#faq", true},
		{"within 1px of bottom", bottom - 0.5, "#faq", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(positions, ScrollState{Y: tt.y, ViewportHeight: viewport, DocumentHeight: document}, offset)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Select at %v = (%q, %v), want (%q, %v)", tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSelectBottomWinsOverThreshold(t *testing.T) {
	// A short page: the last heading never scrolls past the offset line.
	positions := []Position{{Link: "#a", Top: 10}, {Link: "#b", Top: 900}}
	got, ok := Select(positions, ScrollState{Y: 200, ViewportHeight: 800, DocumentHeight: 1000}, 20)
	if !ok || got != "#b" {
		t.Errorf("Select = (%q, %v), want #b", got, ok)
	}
}

func TestSelectSkipsDetachedHeadings(t *testing.T) {
	positions := []Position{
		{Link: "#a", Top: 0},
		{Link: "#hidden", Top: math.NaN()},
		{Link: "#b", Top: 100},
	}
	got, ok := Select(positions, ScrollState{Y: 500, ViewportHeight: 100, DocumentHeight: 5000}, 0)
	if !ok || got != "#b" {
		t.Errorf("Select = (%q, %v), want #b", got, ok)
	}
}

func TestSelectNoValidPositions(t *testing.T) {
	positions := []Position{{Link: "#a", Top: math.NaN()}}
	if got, ok := Select(positions, ScrollState{Y: 300, ViewportHeight: 100, DocumentHeight: 400}, 0); ok {
		t.Errorf("Select = %q, want none", got)
	}
	if got, ok := Select(nil, ScrollState{Y: 300}, 0); ok {
		t.Errorf("Select(nil) = %q, want none", got)
	}
}

func TestSelectSortsByOffset(t *testing.T) {
	// A reflow can leave cached anchors out of visual order.
	positions := []Position{{Link: "#late", Top: 400}, {Link: "#early", Top: 50}}
	got, ok := Select(positions, ScrollState{Y: 100, ViewportHeight: 100, DocumentHeight: 2000}, 0)
	if !ok || got != "#early" {
		t.Errorf("Select = (%q, %v), want #early", got, ok)
	}
}
