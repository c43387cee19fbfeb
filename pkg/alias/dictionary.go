// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"errors"

	"golang.org/x/exp/slices"

	"prog-cli/pkg/progfile"
)

// New returns a dictionary holding aliases in order.
func New(aliases ...Alias) *Dictionary {
	return &Dictionary{aliases: slices.Clone(aliases)}
}

// FromDocument builds a dictionary from a decoded config document, keeping
// the document's key order and duplicate keys.
func FromDocument(doc *progfile.Document) (*Dictionary, error) {
	return fromDocument(doc, "")
}

func fromDocument(doc *progfile.Document, path string) (*Dictionary, error) {
	dict := New()
	if doc == nil {
		return dict, nil
	}

	for _, e := range doc.Entries {
		key := ParseKey(e.Key)
		entryPath := joinPath(path, e.Key)

		var v Value
		switch e.Value.Kind {
		case progfile.ScalarValue:
			v = Command(e.Value.Scalar)
		case progfile.ListValue:
			v = List(slices.Clone(e.Value.List)...)
		case progfile.MapValue:
			sub, err := fromDocument(e.Value.Map, entryPath)
			if err != nil {
				return nil, err
			}
			v = Map(sub)
		default:
			return nil, &progfile.InvalidValueError{Path: entryPath, Reason: "unsupported value kind " + e.Value.Kind.String()}
		}
		dict.aliases = append(dict.aliases, Alias{Key: key, Value: v})
	}
	return dict, nil
}

// Len returns the number of aliases at this level, counting shadowed ones.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.aliases)
}

// Aliases returns a copy of the aliases at this level in declaration order.
func (d *Dictionary) Aliases() []Alias {
	if d == nil {
		return nil
	}
	return slices.Clone(d.aliases)
}

// Lookup returns the last alias at this level whose key name is name.
// Function arity is not taken into account.
func (d *Dictionary) Lookup(name string) (Alias, error) {
	if d != nil {
		for i := len(d.aliases) - 1; i >= 0; i-- {
			if d.aliases[i].Key.Name == name {
				return d.aliases[i], nil
			}
		}
	}
	return Alias{}, &LookupError{Name: name}
}

// ErrSkipAlias can be returned from a WalkFunc to skip the children of a map alias.
var ErrSkipAlias = errors.New("skip this alias")

// WalkFunc is called by Walk for every alias. path is the dotted path of the
// alias key names from the root, depth is 0 at the root level.
type WalkFunc func(path string, depth int, a Alias) error

// Walk visits every alias depth-first in declaration order. Shadowed aliases
// are visited too. Returning ErrSkipAlias from fn skips the children of a map
// alias; any other error stops the walk and is returned.
func (d *Dictionary) Walk(fn WalkFunc) error {
	return d.walk("", 0, fn)
}

func (d *Dictionary) walk(path string, depth int, fn WalkFunc) error {
	if d == nil {
		return nil
	}
	for _, a := range d.aliases {
		p := joinPath(path, a.Key.Name)
		if err := fn(p, depth, a); err != nil {
			if errors.Is(err, ErrSkipAlias) {
				continue
			}
			return err
		}
		if a.Value.Kind == ValueMap {
			if err := a.Value.Map.walk(p, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
