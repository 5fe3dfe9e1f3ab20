package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for an output format name not in Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a Result is rendered.
type Format string

// Output formats.
const (
	Text     Format = "text"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	HTML     Format = "html"
	PDF      Format = "pdf"
)

// Formats lists every output format.
var Formats = []Format{Text, JSON, YAML, Markdown, HTML, PDF}

// ParseFormat parses a format name case-insensitively. "md" is accepted for
// markdown.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "md" {
		return Markdown, nil
	}
	for _, f := range Formats {
		if string(f) == n {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == PDF
}

// Extension returns the file extension used for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	default:
		return string(f)
	}
}

// FormatNames returns format names for help and completion output.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}
