// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSyntax is the sentinel error wrapped by SyntaxError.
var ErrInvalidSyntax = errors.New("invalid invocation syntax")

var (
	declarativeRE = regexp.MustCompile(`^([[:alnum:]]+)$`)
	imperativeRE  = regexp.MustCompile(`^([[:alpha:]]+)\((.*)\)$`)
	scopedRE      = regexp.MustCompile(`^([[:alnum:]]+)\{(.*)\}$`)
	indexicalRE   = regexp.MustCompile(`^([[:alnum:]]+)\[(.*)\]$`)
	selectiveRE   = regexp.MustCompile(`^([[:alnum:]]+)\.(.*)$`)

	// statementDelimRE separates top-level statements in targets and scripts.
	statementDelimRE = regexp.MustCompile(`\s?[;\n]+\s?`)
)

// SyntaxError is returned when a statement matches none of the invocation forms.
// It wraps ErrInvalidSyntax for errors.Is() compatibility.
type SyntaxError struct {
	// Statement is the text that failed to parse.
	Statement string
	// Reason optionally narrows down what was wrong.
	Reason string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", ErrInvalidSyntax, e.Statement, e.Reason)
	}
	return fmt.Sprintf("%s %q", ErrInvalidSyntax, e.Statement)
}

// Unwrap returns ErrInvalidSyntax so callers can use errors.Is for programmatic detection.
func (e *SyntaxError) Unwrap() error { return ErrInvalidSyntax }

// Parse parses a single statement. The statement must not contain statement
// delimiters; use ParseTargets for multi-statement input.
func Parse(stmt string) (Invocation, error) {
	if m := declarativeRE.FindStringSubmatch(stmt); m != nil {
		return Declarative(m[1]), nil
	}

	if m := imperativeRE.FindStringSubmatch(stmt); m != nil {
		return Imperative(m[1], splitArgs(m[2])...), nil
	}

	if m := scopedRE.FindStringSubmatch(stmt); m != nil {
		subs := make([]Invocation, 0)
		for _, part := range splitTopLevel(m[2]) {
			sub, err := Parse(part)
			if err != nil {
				return Invocation{}, err
			}
			subs = append(subs, sub)
		}
		return Scoped(m[1], subs...), nil
	}

	if m := indexicalRE.FindStringSubmatch(stmt); m != nil {
		indices := make([]uint, 0)
		for _, tok := range splitArgs(m[2]) {
			idx, err := strconv.ParseUint(tok, 10, strconv.IntSize)
			if err != nil {
				return Invocation{}, &SyntaxError{Statement: stmt, Reason: fmt.Sprintf("index %q is not a non-negative integer", tok)}
			}
			indices = append(indices, uint(idx))
		}
		return Indexical(m[1], indices...), nil
	}

	if m := selectiveRE.FindStringSubmatch(stmt); m != nil {
		child, err := Parse(m[2])
		if err != nil {
			return Invocation{}, err
		}
		return Selective(m[1], child), nil
	}

	return Invocation{}, &SyntaxError{Statement: stmt}
}

// SplitStatements splits a target or script into statements. Statements are
// separated by runs of ';' or newlines; empty statements are discarded.
func SplitStatements(text string) []string {
	parts := statementDelimRE.Split(text, -1)
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			stmts = append(stmts, p)
		}
	}
	return stmts
}

// ParseTargets parses every statement of a one-line target such as
// "build.debug; push[0,2]". Parsing stops at the first invalid statement.
func ParseTargets(text string) ([]Invocation, error) {
	stmts := SplitStatements(text)
	invs := make([]Invocation, 0, len(stmts))
	for _, stmt := range stmts {
		inv, err := Parse(stmt)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, nil
}

// ParseScript parses a script document. A leading "#!" line is skipped so
// scripts can be made executable with `#!/usr/bin/env -S prog -s`.
func ParseScript(content string) ([]Invocation, error) {
	if strings.HasPrefix(content, "#!") {
		if nl := strings.IndexByte(content, '\n'); nl >= 0 {
			content = content[nl+1:]
		} else {
			content = ""
		}
	}
	return ParseTargets(content)
}

// splitArgs splits an argument or index list on commas, trimming each token
// and dropping empty ones.
func splitArgs(s string) []string {
	args := make([]string, 0)
	for tok := range strings.SplitSeq(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			args = append(args, tok)
		}
	}
	return args
}

// splitTopLevel splits a statement list on commas that are not nested inside
// (), [] or {}, so scopes may contain scoped or indexical statements.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			stmts = append(stmts, p)
		}
	}
	return stmts
}
