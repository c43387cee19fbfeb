// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

const (
	// TemplateBare is an empty document.
	TemplateBare Template = "bare"
	// TemplateCMake configures, builds and tests a CMake project.
	TemplateCMake Template = "cmake"
	// TemplateCargo builds, runs and tests a Cargo project.
	TemplateCargo Template = "cargo"
	// TemplateGo builds, runs and tests a Go module.
	TemplateGo Template = "go"
	// TemplateNode drives npm scripts.
	TemplateNode Template = "node"
	// TemplateMake wraps a Makefile and runs a built binary.
	TemplateMake Template = "make"
	// TemplatePython runs Python scripts.
	TemplatePython Template = "python"
)

// ErrInvalidTemplate is returned when a Template value is not one of the defined templates.
var ErrInvalidTemplate = errors.New("invalid template")

//go:embed templates/*.yml
var templateFS embed.FS

type (
	// Template names a starter document for `prog --generate`.
	Template string

	// InvalidTemplateError is returned when a Template value is not recognized.
	// It wraps ErrInvalidTemplate for errors.Is() compatibility.
	InvalidTemplateError struct {
		Value Template
	}
)

// Templates returns every built-in template in a stable order.
func Templates() []Template {
	return []Template{TemplateBare, TemplateCMake, TemplateCargo, TemplateGo, TemplateNode, TemplateMake, TemplatePython}
}

// IsValid returns whether the Template is one of the built-in templates,
// and a list of validation errors if it is not.
func (t Template) IsValid() (bool, []error) {
	for _, known := range Templates() {
		if t == known {
			return true, nil
		}
	}
	return false, []error{&InvalidTemplateError{Value: t}}
}

// Document returns a fresh copy of the template's document.
func (t Template) Document() (*Document, error) {
	if ok, errs := t.IsValid(); !ok {
		return nil, errs[0]
	}
	if t == TemplateBare {
		return &Document{}, nil
	}

	name := "templates/" + string(t) + ".yml"
	data, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", t, err)
	}
	return Decode(FormatYAML, name, data)
}

// String implements fmt.Stringer and pflag.Value.
func (t Template) String() string { return string(t) }

// Set implements pflag.Value.
func (t *Template) Set(s string) error {
	v := Template(strings.ToLower(s))
	if ok, errs := v.IsValid(); !ok {
		return errs[0]
	}
	*t = v
	return nil
}

// Type implements pflag.Value.
func (t *Template) Type() string { return "template" }

// Error implements the error interface.
func (e *InvalidTemplateError) Error() string {
	names := make([]string, 0, len(Templates()))
	for _, t := range Templates() {
		names = append(names, string(t))
	}
	return fmt.Sprintf("invalid template %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrInvalidTemplate so callers can use errors.Is for programmatic detection.
func (e *InvalidTemplateError) Unwrap() error { return ErrInvalidTemplate }
