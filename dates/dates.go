// Package dates renders publication dates with a locale-aware layout and an
// optional relative suffix, e.g. "24.01.01 (3일 전)".
package dates

import (
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
)

// Defaults match the site's primary audience.
const (
	DefaultLocale   = "ko"
	DefaultTimezone = "Asia/Seoul"
)

var (
	koreanLayout  = "06.01.02"
	englishLayout = "Jan 02, 2006"

	matcher = language.NewMatcher([]language.Tag{language.Korean, language.English})
)

// Options mirrors the formatting knobs callers may set per call.
type Options struct {
	Locale          string
	Timezone        string
	Format          string // Go layout; empty selects the locale default
	IncludeRelative bool
}

// Formatter formats dates for one locale and timezone.
type Formatter struct {
	locale string
	loc    *time.Location
	layout string
	now    func() time.Time
}

// New returns a Formatter. Empty arguments fall back to the defaults.
func New(locale, timezone, layout string) (*Formatter, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("dates: load timezone %q: %w", timezone, err)
	}
	base := matchLocale(locale)
	if layout == "" {
		layout = englishLayout
		if base == "ko" {
			layout = koreanLayout
		}
	}
	return &Formatter{locale: base, loc: loc, layout: layout, now: time.Now}, nil
}

// WithClock returns a copy of f that reads the current time from now.
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	cp := *f
	cp.now = now
	return &cp
}

// Locale reports the matched base language, "ko" or "en".
func (f *Formatter) Locale() string {
	return f.locale
}

// Parse reads a calendar date (midnight in the formatter's timezone) or an
// RFC 3339 timestamp. A timestamp without a zone is in the formatter's timezone.
func (f *Formatter) Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "T") {
		return time.ParseInLocation("2006-01-02", input, f.loc)
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", input, f.loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(f.loc), nil
}

// FormatDate renders input, appending "(relative)" when includeRelative is set.
func (f *Formatter) FormatDate(input string, includeRelative bool) (string, error) {
	t, err := f.Parse(input)
	if err != nil {
		return "", fmt.Errorf("dates: parse %q: %w", input, err)
	}
	out := t.Format(f.layout)
	if includeRelative {
		out += " (" + f.Relative(t, f.now().In(f.loc)) + ")"
	}
	return out, nil
}

// Relative describes target as seen from base, e.g. "3 days ago".
func (f *Formatter) Relative(target, base time.Time) string {
	if f.locale == "ko" {
		if target.After(base) {
			return "미래"
		}
		return humanize.CustomRelTime(target, base, "전", "후", koreanMagnitudes)
	}
	if target.After(base) {
		return "in the future"
	}
	return humanize.CustomRelTime(target, base, "ago", "from now", englishMagnitudes)
}

// Format is a one-shot helper over New and FormatDate.
func Format(input string, opts Options) (string, error) {
	f, err := New(opts.Locale, opts.Timezone, opts.Format)
	if err != nil {
		return "", err
	}
	return f.FormatDate(input, opts.IncludeRelative)
}

func matchLocale(locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	if base.String() == "ko" {
		return "ko"
	}
	return "en"
}

var englishMagnitudes = []humanize.RelTimeMagnitude{
	{D: 45 * time.Second, Format: "a few seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "a minute %s", DivBy: time.Minute},
	{D: 45 * time.Minute, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "an hour %s", DivBy: time.Hour},
	{D: 22 * time.Hour, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "a day %s", DivBy: humanize.Day},
	{D: 26 * humanize.Day, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Month, Format: "a month %s", DivBy: humanize.Month},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "a year %s", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: humanize.Year},
}

var koreanMagnitudes = []humanize.RelTimeMagnitude{
	{D: 45 * time.Second, Format: "몇 초 %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1분 %s", DivBy: time.Minute},
	{D: 45 * time.Minute, Format: "%d분 %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "한 시간 %s", DivBy: time.Hour},
	{D: 22 * time.Hour, Format: "%d시간 %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "하루 %s", DivBy: humanize.Day},
	{D: 26 * humanize.Day, Format: "%d일 %s", DivBy: humanize.Day},
	{D: 2 * humanize.Month, Format: "한 달 %s", DivBy: humanize.Month},
	{D: humanize.Year, Format: "%d달 %s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "일 년 %s", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%d년 %s", DivBy: humanize.Year},
}
