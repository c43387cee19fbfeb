// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// KeyDeclaration is a plain alias name.
	KeyDeclaration KeyKind = iota
	// KeyFunction is an alias name declared with an arity, e.g. "run(1)".
	KeyFunction
)

const (
	// ValueCommand holds a single command string.
	ValueCommand ValueKind = iota + 1
	// ValueList holds an ordered list of command strings.
	ValueList
	// ValueMap holds a nested dictionary.
	ValueMap
)

// ErrAliasNotFound is the sentinel error wrapped by LookupError.
var ErrAliasNotFound = errors.New("alias not found")

var functionKeyRE = regexp.MustCompile(`^([[:alpha:]]+)\((\d+)\)$`)

type (
	// KeyKind tells declarations and functions apart.
	KeyKind int

	// Key is the left-hand side of an alias. Arity is recorded for functions
	// but lookups match on Name only.
	Key struct {
		Kind  KeyKind
		Name  string
		Arity uint
	}

	// ValueKind identifies the shape of a Value.
	ValueKind int

	// Value is the right-hand side of an alias. Only the field matching Kind
	// is meaningful.
	Value struct {
		Kind    ValueKind
		Command string
		List    []string
		Map     *Dictionary
	}

	// Alias binds a key to a value.
	Alias struct {
		Key   Key
		Value Value
	}

	// Dictionary is an ordered sequence of aliases at one nesting level.
	Dictionary struct {
		aliases []Alias
	}

	// LookupError is returned when no alias with the requested name exists at
	// the level being searched. It wraps ErrAliasNotFound for errors.Is() compatibility.
	LookupError struct {
		Name string
		// Path is the dotted path of the enclosing map alias; empty at the root.
		Path string
	}
)

// ParseKey interprets a config document key. Keys of the form "name(N)" are
// functions with arity N; anything else is a declaration named by the whole key.
func ParseKey(raw string) Key {
	if m := functionKeyRE.FindStringSubmatch(raw); m != nil {
		if arity, err := strconv.ParseUint(m[2], 10, strconv.IntSize); err == nil {
			return Key{Kind: KeyFunction, Name: m[1], Arity: uint(arity)}
		}
	}
	return Key{Kind: KeyDeclaration, Name: raw}
}

// String renders the key the way it is written in a config document.
func (k Key) String() string {
	if k.Kind == KeyFunction {
		return fmt.Sprintf("%s(%d)", k.Name, k.Arity)
	}
	return k.Name
}

// String returns the name of the key kind.
func (k KeyKind) String() string {
	switch k {
	case KeyDeclaration:
		return "declaration"
	case KeyFunction:
		return "function"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// String returns the name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueCommand:
		return "command"
	case ValueList:
		return "list"
	case ValueMap:
		return "map"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Command returns a single-command value.
func Command(cmd string) Value {
	return Value{Kind: ValueCommand, Command: cmd}
}

// List returns a command-list value.
func List(cmds ...string) Value {
	return Value{Kind: ValueList, List: cmds}
}

// Map returns a nested-dictionary value. A nil dict is treated as empty.
func Map(dict *Dictionary) Value {
	if dict == nil {
		dict = New()
	}
	return Value{Kind: ValueMap, Map: dict}
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %q", ErrAliasNotFound, e.Name)
	}
	return fmt.Sprintf("%s: %q in %q", ErrAliasNotFound, e.Name, e.Path)
}

// Unwrap returns ErrAliasNotFound so callers can use errors.Is for programmatic detection.
func (e *LookupError) Unwrap() error { return ErrAliasNotFound }
