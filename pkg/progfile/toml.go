// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

var tomlBareKeyRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// decodeTOML walks the expression stream of the TOML parser instead of
// unmarshalling into a map, which would lose key order.
func decodeTOML(data []byte) (*Document, error) {
	root := &Document{}
	current := root
	currentPath := ""

	var p unstable.Parser
	p.Reset(data)

	for p.NextExpression() {
		expr := p.Expression()

		switch expr.Kind {
		case unstable.Table:
			keys := tomlKeys(expr.Key())
			table, err := tomlTable(root, keys, "")
			if err != nil {
				return nil, err
			}
			current = table
			currentPath = strings.Join(keys, ".")
		case unstable.ArrayTable:
			return nil, &InvalidValueError{
				Path:   strings.Join(tomlKeys(expr.Key()), "."),
				Reason: "arrays of tables are not supported",
			}
		case unstable.KeyValue:
			if err := tomlKeyValue(current, expr, currentPath); err != nil {
				return nil, err
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, err
	}
	return root, nil
}

func tomlKeys(it unstable.Iterator) []string {
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Node().Data))
	}
	return keys
}

// tomlTable returns the nested document addressed by keys below doc, creating
// missing tables along the way.
func tomlTable(doc *Document, keys []string, path string) (*Document, error) {
	for _, key := range keys {
		path = joinPath(path, key)
		v, ok := doc.Lookup(key)
		switch {
		case !ok:
			sub := &Document{}
			doc.Append(key, Map(sub))
			doc = sub
		case v.Kind == MapValue:
			doc = v.Map
		default:
			return nil, &InvalidValueError{Path: path, Reason: "key is already defined as a " + v.Kind.String()}
		}
	}
	return doc, nil
}

func tomlKeyValue(doc *Document, kv *unstable.Node, path string) error {
	keys := tomlKeys(kv.Key())
	if len(keys) == 0 {
		return &InvalidValueError{Path: path, Reason: "missing key"}
	}

	target, err := tomlTable(doc, keys[:len(keys)-1], path)
	if err != nil {
		return err
	}

	valuePath := joinPath(path, strings.Join(keys, "."))
	v, err := tomlValue(kv.Value(), valuePath)
	if err != nil {
		return err
	}
	target.Append(keys[len(keys)-1], v)
	return nil
}

func tomlValue(n *unstable.Node, path string) (Value, error) {
	switch {
	case tomlIsScalar(n.Kind):
		return Scalar(string(n.Data)), nil
	case n.Kind == unstable.Array:
		items := make([]string, 0)
		it := n.Children()
		for i := 0; it.Next(); i++ {
			item := it.Node()
			if !tomlIsScalar(item.Kind) {
				return Value{}, &InvalidValueError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: "list items must be strings"}
			}
			items = append(items, string(item.Data))
		}
		return List(items...), nil
	case n.Kind == unstable.InlineTable:
		sub := &Document{}
		it := n.Children()
		for it.Next() {
			if err := tomlKeyValue(sub, it.Node(), path); err != nil {
				return Value{}, err
			}
		}
		return Map(sub), nil
	default:
		return Value{}, &InvalidValueError{Path: path, Reason: "unsupported TOML value " + n.Kind.String()}
	}
}

func tomlIsScalar(k unstable.Kind) bool {
	switch k {
	case unstable.String, unstable.Integer, unstable.Float, unstable.Bool,
		unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return true
	default:
		return false
	}
}

// encodeTOML writes the leaves of each table before its sub-tables, as TOML
// requires; everything else keeps document order.
func encodeTOML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTOMLTable(&buf, doc, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTOMLTable(buf *bytes.Buffer, doc *Document, path []string) error {
	for _, e := range doc.Entries {
		var leaf any
		switch e.Value.Kind {
		case ScalarValue:
			leaf = e.Value.Scalar
		case ListValue:
			leaf = e.Value.List
			if leaf == nil {
				leaf = []string{}
			}
		default:
			continue
		}
		b, err := toml.Marshal(map[string]any{e.Key: leaf})
		if err != nil {
			return fmt.Errorf("encode %q: %w", e.Key, err)
		}
		buf.Write(b)
	}

	for _, e := range doc.Entries {
		if e.Value.Kind != MapValue {
			continue
		}
		sub := append(append([]string(nil), path...), e.Key)
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "[%s]\n", tomlHeader(sub))
		if err := writeTOMLTable(buf, e.Value.Map, sub); err != nil {
			return err
		}
	}
	return nil
}

func tomlHeader(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if tomlBareKeyRE.MatchString(k) {
			parts[i] = k
		} else {
			parts[i] = strconv.Quote(k)
		}
	}
	return strings.Join(parts, ".")
}
