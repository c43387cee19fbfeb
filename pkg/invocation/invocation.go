// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"strconv"
	"strings"
)

const (
	// KindDeclarative invokes an alias by name alone.
	KindDeclarative Kind = iota
	// KindImperative invokes an alias with positional arguments.
	KindImperative
	// KindScoped invokes several statements inside a map alias.
	KindScoped
	// KindIndexical selects positions of a list alias.
	KindIndexical
	// KindSelective invokes one statement inside a map alias.
	KindSelective
)

type (
	// Kind identifies the form of an Invocation.
	Kind int

	// Invocation is a parsed statement. AliasKey names the alias at the current
	// dictionary level; Kind selects which of the payload fields is meaningful:
	//   - KindImperative: Args
	//   - KindScoped: Scope
	//   - KindIndexical: Indices
	//   - KindSelective: Selected
	Invocation struct {
		AliasKey string
		Kind     Kind

		Args     []string
		Scope    []Invocation
		Indices  []uint
		Selected *Invocation
	}
)

// Declarative returns a declarative invocation of key.
func Declarative(key string) Invocation {
	return Invocation{AliasKey: key, Kind: KindDeclarative}
}

// Imperative returns an imperative invocation of key with args.
func Imperative(key string, args ...string) Invocation {
	return Invocation{AliasKey: key, Kind: KindImperative, Args: args}
}

// Scoped returns a scoped invocation of key containing subs.
func Scoped(key string, subs ...Invocation) Invocation {
	return Invocation{AliasKey: key, Kind: KindScoped, Scope: subs}
}

// Indexical returns an indexical invocation of key selecting indices.
func Indexical(key string, indices ...uint) Invocation {
	return Invocation{AliasKey: key, Kind: KindIndexical, Indices: indices}
}

// Selective returns a selective invocation of key resolving child.
func Selective(key string, child Invocation) Invocation {
	return Invocation{AliasKey: key, Kind: KindSelective, Selected: &child}
}

// String returns the name of the invocation kind.
func (k Kind) String() string {
	switch k {
	case KindDeclarative:
		return "declarative"
	case KindImperative:
		return "imperative"
	case KindScoped:
		return "scoped"
	case KindIndexical:
		return "indexical"
	case KindSelective:
		return "selective"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// String renders the invocation back into target syntax. Parsing the result
// yields an equivalent Invocation.
func (inv Invocation) String() string {
	var sb strings.Builder
	inv.write(&sb)
	return sb.String()
}

func (inv Invocation) write(sb *strings.Builder) {
	sb.WriteString(inv.AliasKey)

	switch inv.Kind {
	case KindImperative:
		sb.WriteByte('(')
		sb.WriteString(strings.Join(inv.Args, ","))
		sb.WriteByte(')')
	case KindScoped:
		sb.WriteByte('{')
		for i, sub := range inv.Scope {
			if i > 0 {
				sb.WriteByte(',')
			}
			sub.write(sb)
		}
		sb.WriteByte('}')
	case KindIndexical:
		sb.WriteByte('[')
		for i, idx := range inv.Indices {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
		sb.WriteByte(']')
	case KindSelective:
		sb.WriteByte('.')
		if inv.Selected != nil {
			inv.Selected.write(sb)
		}
	}
}
