// Package storage persists workspaces, report profiles and journal entries
// as markdown files with a YAML frontmatter header.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates a document that must carry a YAML
	// header did not start with one.
	ErrMissingFrontMatter = errors.New("missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML header could not be parsed.
	ErrMalformedFrontMatter = errors.New("malformed frontmatter")
)

const fence = "---"

// SplitFrontMatter separates the YAML header from the markdown body. The
// second result is false when the document has no header, in which case the
// whole (left-trimmed) document is returned as the body.
func SplitFrontMatter(content string) (header string, body string, ok bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	trimmed := strings.TrimLeft(content, " \t\n")
	if !strings.HasPrefix(trimmed, fence) {
		return "", trimmed, false
	}
	rest := trimmed[len(fence):]
	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return "", trimmed, false
	}
	header = strings.TrimSpace(rest[:end])
	body = strings.TrimLeft(rest[end+len(fence)+1:], " \t\n")
	return header, body, true
}

// decodeFrontMatter unmarshals a header into out. An empty header leaves out
// untouched.
func decodeFrontMatter(header string, out any) error {
	if header == "" {
		return nil
	}
	if err := yaml.Unmarshal([]byte(header), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}
	return nil
}

// RenderFrontMatter serializes meta as a fenced YAML header followed by body.
func RenderFrontMatter(meta any, body string) ([]byte, error) {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(data)
	buf.WriteString(fence + "\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}
