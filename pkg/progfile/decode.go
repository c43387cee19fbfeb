// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"fmt"
)

// Decode parses a config document written in format. The name is used in
// diagnostics only.
func Decode(format Format, name string, data []byte) (*Document, error) {
	var (
		doc *Document
		err error
	)

	switch format {
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatJSON:
		doc, err = decodeJSON(name, data)
	case FormatTOML:
		doc, err = decodeTOML(data)
	case FormatCUE:
		doc, err = decodeCUE(name, data)
	default:
		return nil, &InvalidFormatError{Value: format}
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s document %s: %w", format, name, err)
	}
	return doc, nil
}
