package content

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// ErrUnterminatedFrontmatter is returned when the opening fence has no match.
var ErrUnterminatedFrontmatter = errors.New("content: frontmatter is not terminated")

// ParseFrontmatter splits a document into its YAML frontmatter and body.
// Documents without a leading fence have empty frontmatter.
func ParseFrontmatter(data []byte) (map[string]any, []byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	first, rest, found := cutLine(data)
	if !bytes.Equal(bytes.TrimSpace(first), fence) {
		return map[string]any{}, data, nil
	}
	if !found {
		return nil, nil, ErrUnterminatedFrontmatter
	}

	var header []byte
	for {
		line, remaining, more := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			fm := map[string]any{}
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return nil, nil, fmt.Errorf("content: parse frontmatter: %w", err)
			}
			if fm == nil {
				fm = map[string]any{}
			}
			return fm, remaining, nil
		}
		header = append(header, line...)
		header = append(header, '\n')
		if !more {
			return nil, nil, ErrUnterminatedFrontmatter
		}
		rest = remaining
	}
}

// cutLine returns the first line without its terminator and the remainder.
func cutLine(data []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(data, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
