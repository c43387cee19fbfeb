// SPDX-License-Identifier: MPL-2.0

package progfile

import "fmt"

// Encode renders doc in format. Shadowed duplicate keys are collapsed first
// (see Document.Compact) because CUE, JSON and TOML cannot express them.
func Encode(format Format, doc *Document) ([]byte, error) {
	doc = doc.Compact()

	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = encodeYAML(doc)
	case FormatJSON:
		out, err = encodeJSON(doc)
	case FormatTOML:
		out, err = encodeTOML(doc)
	case FormatCUE:
		out, err = encodeCUE(doc)
	default:
		return nil, &InvalidFormatError{Value: format}
	}

	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", format, err)
	}
	return out, nil
}
