// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prog-cli/pkg/cueutil"
)

var (
	// ErrConfigNotFound is the sentinel error wrapped by ConfigNotFoundError.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrFileExists is the sentinel error wrapped by FileExistsError.
	ErrFileExists = errors.New("config file already exists")
)

type (
	// File is a config document loaded from disk.
	File struct {
		// Path is the path of the document as found in its directory.
		Path     string
		Format   Format
		Document *Document
	}

	// ConfigNotFoundError is returned when a directory holds no prog.<ext> file.
	// It wraps ErrConfigNotFound for errors.Is() compatibility.
	ConfigNotFoundError struct {
		Dir string
	}

	// FileExistsError is returned when generating would overwrite a document.
	// It wraps ErrFileExists for errors.Is() compatibility.
	FileExistsError struct {
		Path string
	}
)

// Find returns the path and format of the config document in dir: the first
// entry, in name order, whose stem is "prog" and whose extension names a
// supported format.
func Find(dir string) (string, Format, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("read config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if strings.TrimSuffix(name, ext) != BaseName {
			continue
		}
		if format, ok := FormatFromExtension(ext); ok {
			return filepath.Join(dir, name), format, nil
		}
	}

	return "", "", &ConfigNotFoundError{Dir: dir}
}

// Load finds and decodes the config document in dir.
func Load(dir string) (*File, error) {
	path, format, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return LoadFile(path, format)
}

// LoadFile decodes the document at path.
func LoadFile(path string, format Format) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	doc, err := Decode(format, filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Format: format, Document: doc}, nil
}

// Write encodes doc in format and writes it to dir as prog.<ext>, returning the
// written path.
func Write(dir string, format Format, doc *Document) (string, error) {
	data, err := Encode(format, doc)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, format.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}

// Generate writes template to dir in format. Unless force is set it refuses to
// run when dir already holds a config document of any format.
func Generate(dir string, format Format, template Template, force bool) (string, error) {
	if ok, errs := format.IsValid(); !ok {
		return "", errs[0]
	}

	if !force {
		if existing, _, err := Find(dir); err == nil {
			return "", &FileExistsError{Path: existing}
		}
	}

	doc, err := template.Document()
	if err != nil {
		return "", err
	}
	return Write(dir, format, doc)
}

// Convert rewrites the config document in dir in a new format and removes the
// original file. The written path is returned.
func Convert(dir string, format Format) (string, error) {
	if ok, errs := format.IsValid(); !ok {
		return "", errs[0]
	}

	file, err := Load(dir)
	if err != nil {
		return "", err
	}

	path, err := Write(dir, format, file.Document)
	if err != nil {
		return "", err
	}

	if filepath.Clean(path) != filepath.Clean(file.Path) {
		if err := os.Remove(file.Path); err != nil {
			return path, fmt.Errorf("remove %s: %w", file.Path, err)
		}
	}
	return path, nil
}

// Error implements the error interface.
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("%s in %s (expected %s.yml, %s.json, %s.toml or %s.cue)", ErrConfigNotFound, e.Dir, BaseName, BaseName, BaseName, BaseName)
}

// Unwrap returns ErrConfigNotFound so callers can use errors.Is for programmatic detection.
func (e *ConfigNotFoundError) Unwrap() error { return ErrConfigNotFound }

// Error implements the error interface.
func (e *FileExistsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFileExists, e.Path)
}

// Unwrap returns ErrFileExists so callers can use errors.Is for programmatic detection.
func (e *FileExistsError) Unwrap() error { return ErrFileExists }
