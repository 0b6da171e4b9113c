package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an input file format.
type Format string

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a format name that has no loader.
var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatText, FormatHCL, FormatYAML:
		return f, nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DetectFormat infers the format of path from its extension. Anything that
// is not HCL or YAML is read as the line-oriented text format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}
