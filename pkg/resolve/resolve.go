// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"

	"prog-cli/pkg/alias"
	"prog-cli/pkg/invocation"
)

const (
	msgMapDeclarative = "cannot invoke map alias declaratively"
	msgMapImperative  = "cannot invoke map alias imperatively"
	msgScopeNotMap    = "only map aliases can be invoked with a scope"
	msgIndexNotList   = "only list aliases can be indexed"
	msgSelectNotMap   = "only map aliases can be invoked selectively"
)

// ErrKindMismatch is the sentinel error wrapped by KindMismatchError.
var ErrKindMismatch = errors.New("alias kind mismatch")

var placeholderRE = regexp.MustCompile(`\$\d+`)

// KindMismatchError is returned when an invocation form does not fit the shape
// of the alias it names, e.g. indexing a single command.
// It wraps ErrKindMismatch for errors.Is() compatibility.
type KindMismatchError struct {
	// Path is the dotted path of the alias, e.g. "build.release".
	Path string
	// Invocation is the form that was attempted.
	Invocation invocation.Kind
	// Alias is the shape the alias actually has.
	Alias   alias.ValueKind
	Message string
}

// Error implements the error interface.
func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s: %s (%q is a %s alias)", ErrKindMismatch, e.Message, e.Path, e.Alias)
}

// Unwrap returns ErrKindMismatch so callers can use errors.Is for programmatic detection.
func (e *KindMismatchError) Unwrap() error { return ErrKindMismatch }

// ResolveAll resolves every invocation in order against the root dictionary
// and concatenates the results. The first failure aborts the batch.
func ResolveAll(invs []invocation.Invocation, dict *alias.Dictionary) ([]string, error) {
	cmds := make([]string, 0, len(invs))
	for _, inv := range invs {
		out, err := Resolve(inv, dict)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, out...)
	}
	return cmds, nil
}

// Resolve resolves a single invocation against dict.
func Resolve(inv invocation.Invocation, dict *alias.Dictionary) ([]string, error) {
	return resolve(inv, dict, "")
}

func resolve(inv invocation.Invocation, dict *alias.Dictionary, scope string) ([]string, error) {
	a, err := dict.Lookup(inv.AliasKey)
	if err != nil {
		var lookupErr *alias.LookupError
		if errors.As(err, &lookupErr) {
			lookupErr.Path = scope
		}
		return nil, err
	}

	path := inv.AliasKey
	if scope != "" {
		path = scope + "." + inv.AliasKey
	}
	v := a.Value

	mismatch := func(msg string) error {
		return &KindMismatchError{Path: path, Invocation: inv.Kind, Alias: v.Kind, Message: msg}
	}

	switch inv.Kind {
	case invocation.KindDeclarative:
		switch v.Kind {
		case alias.ValueCommand:
			return []string{v.Command}, nil
		case alias.ValueList:
			return slices.Clone(v.List), nil
		default:
			return nil, mismatch(msgMapDeclarative)
		}

	case invocation.KindImperative:
		switch v.Kind {
		case alias.ValueCommand:
			return []string{Substitute(v.Command, inv.Args)}, nil
		case alias.ValueList:
			out := make([]string, len(v.List))
			for i, cmd := range v.List {
				out[i] = Substitute(cmd, inv.Args)
			}
			return out, nil
		default:
			return nil, mismatch(msgMapImperative)
		}

	case invocation.KindScoped:
		if v.Kind != alias.ValueMap {
			return nil, mismatch(msgScopeNotMap)
		}
		out := make([]string, 0, len(inv.Scope))
		for _, sub := range inv.Scope {
			cmds, err := resolve(sub, v.Map, path)
			if err != nil {
				return nil, err
			}
			out = append(out, cmds...)
		}
		return out, nil

	case invocation.KindIndexical:
		if v.Kind != alias.ValueList {
			return nil, mismatch(msgIndexNotList)
		}
		out := make([]string, 0, len(inv.Indices))
		for i, cmd := range v.List {
			if slices.Contains(inv.Indices, uint(i)) {
				out = append(out, cmd)
			}
		}
		return out, nil

	case invocation.KindSelective:
		if v.Kind != alias.ValueMap {
			return nil, mismatch(msgSelectNotMap)
		}
		if inv.Selected == nil {
			return nil, &invocation.SyntaxError{Statement: inv.String(), Reason: "selective invocation without a member"}
		}
		return resolve(*inv.Selected, v.Map, path)

	default:
		return nil, fmt.Errorf("unknown invocation kind %s", inv.Kind)
	}
}

// Substitute replaces the placeholders of cmd positionally: the j-th "$N"
// token, counted from the left, becomes args[j] whatever N is. Placeholders
// beyond len(args) are left untouched and surplus args are ignored.
func Substitute(cmd string, args []string) string {
	if len(args) == 0 {
		return cmd
	}

	locs := placeholderRE.FindAllStringIndex(cmd, len(args))
	if len(locs) == 0 {
		return cmd
	}

	var b strings.Builder
	last := 0
	for j, loc := range locs {
		b.WriteString(cmd[last:loc[0]])
		b.WriteString(args[j])
		last = loc[1]
	}
	b.WriteString(cmd[last:])
	return b.String()
}
