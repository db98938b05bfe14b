package output

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned for format tokens that have no renderer.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format selects a report renderer
type Format string

const (
	FormatJSON     Format = "json" // structured, lossless
	FormatYAML     Format = "yaml" // human-readable structured text, lossless
	FormatMarkdown Format = "md"   // document with one section per feature
)

var formatAliases = map[string]Format{
	"json":             FormatJSON,
	"structured":       FormatJSON,
	"yaml":             FormatYAML,
	"human-structured": FormatYAML,
	"md":               FormatMarkdown,
	"markdown":         FormatMarkdown,
	"document":         FormatMarkdown,
}

// ParseFormat resolves a user supplied format token.
func ParseFormat(token string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(token))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s. Use 'json', 'yaml', or 'md'", ErrUnsupportedFormat, token)
}

// Extension returns the file extension, without dot, for reports in format f.
func Extension(f Format) string {
	return string(f)
}
