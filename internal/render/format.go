// Package render writes readings, pillar checks, search results and the
// sexagenary table as text, JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

// Output formats.
const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

var knownFormats = map[Format]bool{Text: true, JSON: true, YAML: true}

// ParseFormat validates a format name. The empty string means Text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Text, nil
	}
	f := Format(s)
	if !knownFormats[f] {
		return "", fmt.Errorf("%w: %q (want text, json or yaml)", ErrUnknownFormat, s)
	}
	return f, nil
}

// Structured writes v as indented JSON or as YAML.
func Structured(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q is not structured", ErrUnknownFormat, f)
	}
}
