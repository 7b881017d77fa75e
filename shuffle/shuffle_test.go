package shuffle

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFramesEndWithInput(t *testing.T) {
	for _, text := range []string{"Test content", "안녕 하세요", "v1.2 - ok!", ""} {
		frames, err := Frames(text, Config{Iterations: 3, FPS: 30}, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("Frames(%q): %v", text, err)
		}
		if got := frames[len(frames)-1]; got != text {
			t.Errorf("last frame of %q = %q", text, got)
		}
	}
}

func TestFrameCount(t *testing.T) {
	frames, err := Frames("Test content", DefaultConfig, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	// 11 non-space runes + 8 iterations + 1 settled frame.
	if len(frames) != 20 {
		t.Errorf("frames = %d, want 20", len(frames))
	}
}

func TestFramesPreserveWhitespaceAndClass(t *testing.T) {
	text := "aB3 가!"
	frames, err := Frames(text, Config{Iterations: 50, FPS: 1}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	// With a window wider than the text, the first settled-free frame
	// scrambles every non-space rune.
	full := []rune(frames[50-5])
	want := []rune(text)
	if len(full) != len(want) {
		t.Fatalf("frame %q has %d runes, want %d", string(full), len(full), len(want))
	}
	for i, r := range full {
		if classify(r) != classify(want[i]) {
			t.Errorf("rune %d = %q (class %d), want class of %q", i, r, classify(r), want[i])
		}
	}
	if full[3] != ' ' {
		t.Errorf("space was scrambled: %q", string(full))
	}
}

func TestFramesGrowFromLeft(t *testing.T) {
	frames, err := Frames("abcdef", Config{Iterations: 2, FPS: 30}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	// First frame: window covers positions -2..-1, nothing is shown.
	if frames[0] != "" {
		t.Errorf("first frame = %q, want empty", frames[0])
	}
	for i, f := range frames {
		n := utf8.RuneCountInString(f)
		start := i - 2
		want := start + 2
		if want > 6 {
			want = 6
		}
		if n != want {
			t.Errorf("frame %d = %q has %d runes, want %d", i, f, n, want)
		}
		if start > 0 && f[:start] != "abcdef"[:start] {
			t.Errorf("frame %d = %q, settled prefix lost", i, f)
		}
	}
}

func TestConfigBounds(t *testing.T) {
	bad := []Config{
		{Iterations: 0, FPS: 30},
		{Iterations: 51, FPS: 30},
		{Iterations: 8, FPS: 0},
		{Iterations: 8, FPS: 61},
	}
	for _, cfg := range bad {
		_, err := Frames("x", cfg, nil)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Errorf("Frames(%+v) err = %v, want *RangeError", cfg, err)
		}
	}
	if err := (Config{Iterations: 50, FPS: 60}).Validate(); err != nil {
		t.Errorf("upper bounds rejected: %v", err)
	}
}

func TestInterval(t *testing.T) {
	if got := (Config{Iterations: 1, FPS: 4}).Interval(); got != 250*time.Millisecond {
		t.Errorf("Interval = %v", got)
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var seen int
	err := Play(ctx, "hello", Config{Iterations: 1, FPS: 60}, rand.New(rand.NewSource(1)), func(string) {
		seen++
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if seen != 1 {
		t.Errorf("frames emitted = %d, want 1", seen)
	}
}

func TestPlayEmitsEveryFrame(t *testing.T) {
	var last string
	n := 0
	err := Play(context.Background(), "ab", Config{Iterations: 1, FPS: 60}, rand.New(rand.NewSource(1)), func(f string) {
		last = f
		n++
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if n != 4 || last != "ab" {
		t.Errorf("emitted %d frames ending %q, want 4 ending ab", n, last)
	}
}
