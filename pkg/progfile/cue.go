// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	cuejson "cuelang.org/go/encoding/json"
)

// cueIdentRE matches labels that can be written without quotes. Labels starting
// with '_' or '#' are hidden fields and definitions in CUE, so they stay quoted.
var cueIdentRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

var cueKeywords = map[string]bool{
	"package": true, "import": true, "for": true, "in": true, "if": true, "let": true,
	"true": true, "false": true, "null": true, "func": true,
}

func decodeCUE(name string, data []byte) (*Document, error) {
	v := cuecontext.New().CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, err
	}
	return cueDocument(v)
}

// decodeJSON goes through CUE because its struct iteration keeps field order,
// which encoding/json maps do not.
func decodeJSON(name string, data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Document{}, nil
	}
	expr, err := cuejson.Extract(name, data)
	if err != nil {
		return nil, err
	}
	v := cuecontext.New().BuildExpr(expr)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return cueDocument(v)
}

func cueDocument(v cue.Value) (*Document, error) {
	if v.Kind() != cue.StructKind {
		return nil, &InvalidValueError{Path: "", Reason: "top level must be a mapping"}
	}
	return cueStruct(v, "")
}

func cueStruct(v cue.Value, path string) (*Document, error) {
	it, err := v.Fields()
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for it.Next() {
		key := it.Selector().Unquoted()
		val, err := cueValue(it.Value(), joinPath(path, key))
		if err != nil {
			return nil, err
		}
		doc.Append(key, val)
	}
	return doc, nil
}

func cueValue(v cue.Value, path string) (Value, error) {
	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return Value{}, err
		}
		return Scalar(s), nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind, cue.BoolKind:
		s, err := cueScalarText(v)
		if err != nil {
			return Value{}, err
		}
		return Scalar(s), nil
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return Value{}, err
		}
		items := make([]string, 0)
		for i := 0; list.Next(); i++ {
			item := list.Value()
			var s string
			switch item.Kind() {
			case cue.StringKind:
				s, err = item.String()
			case cue.IntKind, cue.FloatKind, cue.NumberKind, cue.BoolKind:
				s, err = cueScalarText(item)
			default:
				return Value{}, &InvalidValueError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: "list items must be strings"}
			}
			if err != nil {
				return Value{}, err
			}
			items = append(items, s)
		}
		return List(items...), nil
	case cue.StructKind:
		sub, err := cueStruct(v, path)
		if err != nil {
			return Value{}, err
		}
		return Map(sub), nil
	case cue.NullKind:
		return Value{}, &InvalidValueError{Path: path, Reason: "value is empty"}
	default:
		return Value{}, &InvalidValueError{Path: path, Reason: "value is not concrete"}
	}
}

func cueScalarText(v cue.Value) (string, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeCUE(doc *Document) ([]byte, error) {
	file := &ast.File{Decls: cueFields(doc)}
	return format.Node(file)
}

func encodeJSON(doc *Document) ([]byte, error) {
	v := cuecontext.New().BuildExpr(&ast.StructLit{Elts: cueFields(doc)})
	if err := v.Err(); err != nil {
		return nil, err
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func cueFields(doc *Document) []ast.Decl {
	decls := make([]ast.Decl, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		decls = append(decls, &ast.Field{Label: cueLabel(e.Key), Value: cueExpr(e.Value)})
	}
	return decls
}

func cueLabel(key string) ast.Label {
	if cueIdentRE.MatchString(key) && !cueKeywords[key] {
		return ast.NewIdent(key)
	}
	return ast.NewString(key)
}

func cueExpr(v Value) ast.Expr {
	switch v.Kind {
	case ListValue:
		elems := make([]ast.Expr, 0, len(v.List))
		for _, item := range v.List {
			elems = append(elems, ast.NewString(item))
		}
		return ast.NewList(elems...)
	case MapValue:
		return &ast.StructLit{Elts: cueFields(v.Map)}
	default:
		return ast.NewString(v.Scalar)
	}
}
