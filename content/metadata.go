package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Length budgets for header fields, counted in runes.
const (
	MaxTitleLength       = 38
	MaxDescriptionLength = 150
	MaxSummaryLength     = 40
)

// DateLayout is the calendar-date form accepted for publishedAt. RFC 3339
// timestamps are accepted as well, with or without a zone offset.
const DateLayout = "2006-01-02"

// localTimestampLayout is an RFC 3339 timestamp without its zone; it is
// read as UTC.
const localTimestampLayout = "2006-01-02T15:04:05"

// Metadata is the validated header of a document.
type Metadata struct {
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Summary     string `json:"summary"`
	Image       string `json:"image,omitempty"`
}

// Violation is one failing header field.
type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Reason
}

// ErrInvalidMetadata is matched by every *MetadataValidationError.
var ErrInvalidMetadata = errors.New("invalid metadata")

// MetadataValidationError carries every violation found in one header,
// ordered by field name.
type MetadataValidationError struct {
	Path       string
	Violations []Violation
}

func (e *MetadataValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	msg := "content: invalid metadata"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(parts, "; "))
}

// Is lets callers test with errors.Is(err, ErrInvalidMetadata).
func (e *MetadataValidationError) Is(target error) bool {
	return target == ErrInvalidMetadata
}

var (
	errNotString   = validation.NewError("content_not_string", "must be a string")
	errInvalidDate = validation.NewError("content_invalid_date", "must be a calendar date (YYYY-MM-DD)")
)

var isString = validation.By(func(value any) error {
	if _, ok := value.(string); !ok {
		return errNotString
	}
	return nil
})

var isDate = validation.By(func(value any) error {
	s, _ := value.(string)
	if _, err := parseDate(s); err != nil {
		return errInvalidDate
	}
	return nil
})

var metadataRules = validation.Map(
	validation.Key("title", isString, validation.RuneLength(0, MaxTitleLength)),
	validation.Key("publishedAt", isString, isDate),
	validation.Key("category", isString),
	validation.Key("description", isString, validation.RuneLength(0, MaxDescriptionLength)).Optional(),
	validation.Key("summary", isString, validation.RuneLength(0, MaxSummaryLength)),
	validation.Key("image", isString).Optional(),
).AllowExtraKeys()

// ValidateFields checks fields against the header schema. On failure the
// returned *MetadataValidationError lists every failing field.
func ValidateFields(fields Fields) (Metadata, error) {
	if fields == nil {
		fields = Fields{}
	}
	if err := validation.Validate(map[string]any(fields), metadataRules); err != nil {
		var errs validation.Errors
		if !errors.As(err, &errs) {
			return Metadata{}, fmt.Errorf("content: validate metadata: %w", err)
		}
		return Metadata{}, &MetadataValidationError{Violations: violations(errs)}
	}
	str := func(key string) string {
		s, _ := fields[key].(string)
		return s
	}
	return Metadata{
		Title:       str("title"),
		PublishedAt: str("publishedAt"),
		Category:    str("category"),
		Description: str("description"),
		Summary:     str("summary"),
		Image:       str("image"),
	}, nil
}

func violations(errs validation.Errors) []Violation {
	out := make([]Violation, 0, len(errs))
	for field, err := range errs {
		out = append(out, Violation{Field: field, Reason: err.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(localTimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
