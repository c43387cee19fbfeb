// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FormatYAML is written as prog.yml; prog.yaml is also read.
	FormatYAML Format = "yaml"
	// FormatJSON is written as prog.json.
	FormatJSON Format = "json"
	// FormatTOML is written as prog.toml.
	FormatTOML Format = "toml"
	// FormatCUE is written as prog.cue.
	FormatCUE Format = "cue"

	// BaseName is the file stem every config document must have.
	BaseName = "prog"
)

// ErrInvalidFormat is returned when a Format value is not one of the defined formats.
var ErrInvalidFormat = errors.New("invalid config format")

type (
	// Format is a markup dialect a config document can be written in.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}
)

// Formats returns every supported format in a stable order.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatTOML, FormatCUE}
}

// FormatFromExtension maps a file extension (with its leading dot) to a Format.
func FormatFromExtension(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	case ".cue":
		return FormatCUE, true
	default:
		return "", false
	}
}

// IsValid returns whether the Format is one of the defined formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatYAML, FormatJSON, FormatTOML, FormatCUE:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yml"
	}
	return "." + string(f)
}

// FileName returns the config file name written for the format.
func (f Format) FileName() string {
	return BaseName + f.Extension()
}

// String implements fmt.Stringer and pflag.Value.
func (f Format) String() string { return string(f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	v := Format(strings.ToLower(s))
	if ok, errs := v.IsValid(); !ok {
		return errs[0]
	}
	*f = v
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid config format %q (valid: yaml, json, toml, cue)", e.Value)
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is for programmatic detection.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }
