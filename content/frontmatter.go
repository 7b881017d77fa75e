package content

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Delimiter opens and closes the header block of a content file.
const Delimiter = "---"

// ErrMissingFrontmatter is matched by every *MissingFrontmatterError.
var ErrMissingFrontmatter = errors.New("front matter not found")

// MissingFrontmatterError reports a content file without a header block.
type MissingFrontmatterError struct {
	Path string
}

func (e *MissingFrontmatterError) Error() string {
	if e.Path == "" {
		return "content: front matter not found"
	}
	return fmt.Sprintf("content: front matter not found in %s", e.Path)
}

// Is lets callers test with errors.Is(err, ErrMissingFrontmatter).
func (e *MissingFrontmatterError) Is(target error) bool {
	return target == ErrMissingFrontmatter
}

// Fields is the untyped key/value record read from a header block.
type Fields map[string]any

var headerFormat = frontmatter.NewFormat(Delimiter, Delimiter, unmarshalFields)

// Parse splits raw into its header fields and its body. The body is
// everything after the closing delimiter with surrounding whitespace trimmed.
func Parse(raw []byte) (Fields, string, error) {
	fields := Fields{}
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &fields, headerFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, "", &MissingFrontmatterError{}
		}
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return fields, strings.TrimSpace(string(body)), nil
}

// unmarshalFields reads "key: value" lines. Values lose one pair of
// matching surrounding quotes.
func unmarshalFields(data []byte, v any) error {
	out, ok := v.(*Fields)
	if !ok {
		return fmt.Errorf("frontmatter: unsupported target %T", v)
	}
	if *out == nil {
		*out = Fields{}
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		(*out)[key] = unquote(strings.TrimSpace(value))
	}
	return scanner.Err()
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
