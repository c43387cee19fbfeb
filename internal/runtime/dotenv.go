// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidEnvFile is the sentinel error wrapped by EnvFileError.
var ErrInvalidEnvFile = errors.New("invalid env file")

// EnvFileError reports a dotenv line that is not a plain assignment.
// It wraps ErrInvalidEnvFile for errors.Is() compatibility.
type EnvFileError struct {
	File   string
	Line   uint
	Reason string
}

// Error implements the error interface.
func (e *EnvFileError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// Unwrap returns ErrInvalidEnvFile so callers can use errors.Is for programmatic detection.
func (e *EnvFileError) Unwrap() error { return ErrInvalidEnvFile }

// LoadEnvFile reads the dotenv file at path into env. A relative path is
// resolved against dir. A path suffixed with '?' is optional and a missing
// optional file is not an error. Later files override earlier values.
func LoadEnvFile(env map[string]string, path, dir string) error {
	path, optional := strings.CutSuffix(path, "?")

	full := filepath.FromSlash(path)
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, full)
	}

	content, err := os.ReadFile(full)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	return ParseEnvFile(env, content, path)
}

// ParseEnvFile parses dotenv content into env. Every statement must be a
// plain assignment, optionally prefixed with export. Values follow shell
// quoting and may reference variables set earlier in the file or in the
// process environment; command substitution is rejected.
func ParseEnvFile(env map[string]string, content []byte, name string) error {
	file, err := syntax.NewParser().Parse(bytes.NewReader(content), name)
	if err != nil {
		return &EnvFileError{File: name, Reason: err.Error()}
	}

	cfg := &expand.Config{Env: expand.FuncEnviron(func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	})}

	for _, stmt := range file.Stmts {
		assigns, err := envAssigns(stmt)
		if err != nil {
			return &EnvFileError{File: name, Line: stmt.Pos().Line(), Reason: err.Error()}
		}
		for _, as := range assigns {
			value := ""
			if as.Value != nil {
				if value, err = expand.Literal(cfg, as.Value); err != nil {
					return &EnvFileError{File: name, Line: as.Pos().Line(), Reason: err.Error()}
				}
			}
			env[as.Name.Value] = value
		}
	}
	return nil
}

func envAssigns(stmt *syntax.Stmt) ([]*syntax.Assign, error) {
	if stmt.Negated || stmt.Background || stmt.Coprocess || len(stmt.Redirs) > 0 {
		return nil, errors.New("expected KEY=value")
	}

	var assigns []*syntax.Assign
	switch cmd := stmt.Cmd.(type) {
	case *syntax.CallExpr:
		if len(cmd.Args) > 0 {
			return nil, errors.New("expected KEY=value, found a command")
		}
		assigns = cmd.Assigns
	case *syntax.DeclClause:
		if cmd.Variant.Value != "export" {
			return nil, fmt.Errorf("unsupported %q declaration", cmd.Variant.Value)
		}
		assigns = cmd.Args
	default:
		return nil, errors.New("expected KEY=value")
	}

	for _, as := range assigns {
		if as.Naked || as.Append || as.Index != nil || as.Array != nil || as.Name == nil {
			return nil, errors.New("expected KEY=value")
		}
	}
	return assigns, nil
}
