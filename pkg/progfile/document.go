// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ScalarValue holds a single command string.
	ScalarValue ValueKind = iota + 1
	// ListValue holds an ordered list of command strings.
	ListValue
	// MapValue holds a nested document.
	MapValue
)

// ErrInvalidValue is the sentinel error wrapped by InvalidValueError.
var ErrInvalidValue = errors.New("invalid config value")

type (
	// ValueKind identifies the structural shape of a Value.
	ValueKind int

	// Value is one of the three structural shapes a config entry can take.
	// Only the field matching Kind is meaningful.
	Value struct {
		Kind   ValueKind
		Scalar string
		List   []string
		Map    *Document
	}

	// Entry is a single key/value pair of a Document.
	Entry struct {
		Key   string
		Value Value
	}

	// Document is an ordered mapping from keys to values. Keys are not required
	// to be unique; consumers treat the last occurrence as authoritative.
	Document struct {
		Entries []Entry
	}

	// InvalidValueError is returned when a decoded value is not a string, a list
	// of strings or a mapping. It wraps ErrInvalidValue for errors.Is() compatibility.
	InvalidValueError struct {
		// Path is the dotted key path of the offending value.
		Path   string
		Reason string
	}
)

// Scalar returns a scalar Value.
func Scalar(s string) Value {
	return Value{Kind: ScalarValue, Scalar: s}
}

// List returns a list Value.
func List(items ...string) Value {
	return Value{Kind: ListValue, List: items}
}

// Map returns a nested-document Value. A nil doc is treated as empty.
func Map(doc *Document) Value {
	if doc == nil {
		doc = &Document{}
	}
	return Value{Kind: MapValue, Map: doc}
}

// String returns the name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ScalarValue:
		return "scalar"
	case ListValue:
		return "list"
	case MapValue:
		return "map"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Append adds an entry at the end of the document.
func (d *Document) Append(key string, v Value) {
	d.Entries = append(d.Entries, Entry{Key: key, Value: v})
}

// Len returns the number of entries, counting shadowed duplicates.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Lookup returns the value of the last entry named key.
func (d *Document) Lookup(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	for i := len(d.Entries) - 1; i >= 0; i-- {
		if d.Entries[i].Key == key {
			return d.Entries[i].Value, true
		}
	}
	return Value{}, false
}

// Compact returns a copy of the document, recursively, in which every key occurs
// once. A shadowed key keeps the position and value of its last occurrence, so
// lookups give the same answers as on the original.
func (d *Document) Compact() *Document {
	out := &Document{}
	if d == nil {
		return out
	}

	last := make(map[string]int, len(d.Entries))
	for i, e := range d.Entries {
		last[e.Key] = i
	}

	for i, e := range d.Entries {
		if last[e.Key] != i {
			continue
		}
		v := e.Value
		switch v.Kind {
		case MapValue:
			v = Map(v.Map.Compact())
		case ListValue:
			v = List(append([]string(nil), v.List...)...)
		}
		out.Append(e.Key, v)
	}
	return out
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s at %q: %s", ErrInvalidValue, e.Path, e.Reason)
}

// Unwrap returns ErrInvalidValue so callers can use errors.Is for programmatic detection.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// joinPath appends key to a dotted key path.
func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return strings.Join([]string{path, key}, ".")
}
