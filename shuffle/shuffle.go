// Package shuffle produces the "scrambled letters" reveal used on list
// headings: each frame replaces a sliding window of characters with random
// ones of the same class until the original text settles.
package shuffle

import (
	"context"
	"fmt"
	"math/rand"
	"time"
	"unicode"
)

// Bounds for Config fields.
const (
	MinIterations = 1
	MaxIterations = 50
	MinFPS        = 1
	MaxFPS        = 60
)

// DefaultConfig is what the site uses when nothing is specified.
var DefaultConfig = Config{Iterations: 8, FPS: 30}

// Config controls one animation.
type Config struct {
	// Iterations is the width of the scrambled window.
	Iterations int `json:"iterations"`
	FPS        int `json:"fps"`
}

// RangeError reports a Config field outside its bounds.
type RangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("shuffle: %s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// Validate checks the bounds of c.
func (c Config) Validate() error {
	if c.Iterations < MinIterations || c.Iterations > MaxIterations {
		return &RangeError{Field: "iterations", Value: c.Iterations, Min: MinIterations, Max: MaxIterations}
	}
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		return &RangeError{Field: "fps", Value: c.FPS, Min: MinFPS, Max: MaxFPS}
	}
	return nil
}

// Interval is the delay between frames.
func (c Config) Interval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

type class int

const (
	classSpace class = iota
	classLower
	classUpper
	classDigit
	classSymbol
	classHangul
)

const (
	lower   = "abcdefghijklmnopqrstuvwxyz"
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
	symbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	hangulFirst = 0xAC00
	hangulLast  = 0xD7A3
)

// IsHangul reports whether r is a precomposed Hangul syllable.
func IsHangul(r rune) bool {
	return r >= hangulFirst && r <= hangulLast
}

func classify(r rune) class {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case IsHangul(r):
		return classHangul
	case r >= 'a' && r <= 'z':
		return classLower
	case r >= 'A' && r <= 'Z':
		return classUpper
	case r >= '0' && r <= '9':
		return classDigit
	default:
		return classSymbol
	}
}

func randomOf(c class, rng *rand.Rand) rune {
	switch c {
	case classHangul:
		return rune(hangulFirst + rng.Intn(hangulLast-hangulFirst+1))
	case classLower:
		return rune(lower[rng.Intn(len(lower))])
	case classUpper:
		return rune(upper[rng.Intn(len(upper))])
	case classDigit:
		return rune(digits[rng.Intn(len(digits))])
	default:
		return rune(symbols[rng.Intn(len(symbols))])
	}
}

// Frames returns every frame of the animation for text. Whitespace is never
// scrambled and the last frame equals text. A nil rng is seeded from the clock.
func Frames(text string, cfg Config, rng *rand.Rand) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	chars := []rune(text)
	var positions []int
	for i, r := range chars {
		if classify(r) != classSpace {
			positions = append(positions, i)
		}
	}

	frames := make([]string, 0, len(positions)+cfg.Iterations+1)
	for start := -cfg.Iterations; start <= len(positions); start++ {
		frame := make([]rune, 0, len(chars))
		next := 0
		for i, r := range chars {
			if next < len(positions) && positions[next] == i {
				k := next
				next++
				switch {
				case k < start:
					frame = append(frame, r)
				case k < start+cfg.Iterations:
					frame = append(frame, randomOf(classify(r), rng))
				}
				continue
			}
			frame = append(frame, r)
		}
		frames = append(frames, string(frame))
	}
	return frames, nil
}

// Play emits the frames of text at cfg.FPS until they run out or ctx is
// done. It returns ctx.Err() when cancelled.
func Play(ctx context.Context, text string, cfg Config, rng *rand.Rand, emit func(frame string)) error {
	frames, err := Frames(text, cfg, rng)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		emit(f)
	}
	return nil
}
