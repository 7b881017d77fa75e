package toc

import (
	"math/rand"
	"testing"
)

func headings(levels ...Level) []Heading {
	out := make([]Heading, len(levels))
	for i, l := range levels {
		id := string(rune('a' + i))
		out[i] = Heading{Level: l, ID: id, Title: id, Handle: Handle(i), HasContent: true}
	}
	return out
}

func TestBuildOutlineNesting(t *testing.T) {
	items := BuildOutline(headings(2, 3, 3, 2, 4, 3))
	if len(items) != 2 {
		t.Fatalf("roots = %d, want 2", len(items))
	}
	a, d := items[0], items[1]
	if a.Link != "#a" || len(a.Children) != 2 {
		t.Fatalf("first root = %s with %d children", a.Link, len(a.Children))
	}
	if a.Children[0].Link != "#b" || a.Children[1].Link != "#c" {
		t.Errorf("children of #a = %s, %s", a.Children[0].Link, a.Children[1].Link)
	}
	// Skipped level: h4 nests directly under h2, the following h3 too.
	if len(d.Children) != 2 || d.Children[0].Link != "#e" || d.Children[1].Link != "#f" {
		t.Errorf("children of #d = %+v", d.Children)
	}
}

func TestBuildOutlineLeadingDeepHeading(t *testing.T) {
	items := BuildOutline(headings(4, 2, 3))
	if len(items) != 2 || items[0].Link != "#a" || items[1].Link != "#b" {
		t.Fatalf("roots = %+v", items)
	}
	if len(items[1].Children) != 1 || items[1].Children[0].Link != "#c" {
		t.Errorf("children of #b = %+v", items[1].Children)
	}
}

func TestBuildOutlineEmpty(t *testing.T) {
	if items := BuildOutline(nil); len(items) != 0 {
		t.Errorf("BuildOutline(nil) = %+v", items)
	}
}

func TestOutlineNestingInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		levels := make([]Level, r.Intn(12))
		for i := range levels {
			levels[i] = Level(2 + r.Intn(5))
		}
		items := BuildOutline(headings(levels...))

		flat := Flatten(items)
		if len(flat) != len(levels) {
			t.Fatalf("round %d: flattened %d items from %d headings", round, len(flat), len(levels))
		}
		for i, it := range flat {
			if want := string(rune('a' + i)); it.Title != want {
				t.Fatalf("round %d: item %d is %q, want document order", round, i, it.Title)
			}
		}
		checkSubtree(t, items)
	}
}

func checkSubtree(t *testing.T, items []*MenuItem) {
	t.Helper()
	for _, it := range items {
		for _, desc := range Flatten(it.Children) {
			if desc.Level <= it.Level {
				t.Fatalf("%s (h%d) has descendant %s at h%d", it.Link, it.Level, desc.Link, desc.Level)
			}
		}
		checkSubtree(t, it.Children)
	}
}

func TestLevelRange(t *testing.T) {
	if !DefaultRange.Contains(2) || !DefaultRange.Contains(6) || DefaultRange.Contains(1) {
		t.Error("DefaultRange should hold 2..6")
	}
	if r := (LevelRange{Min: 3, Max: 3}); !r.Contains(3) || r.Contains(2) || r.Contains(4) {
		t.Errorf("range %+v", r)
	}
	for _, r := range []LevelRange{{0, 3}, {2, 7}, {4, 2}} {
		if err := r.validate(); err == nil {
			t.Errorf("validate(%+v) = nil, want error", r)
		}
	}
}
