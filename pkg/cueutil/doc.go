// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE helpers shared by settings loading and
// config document decoding: schema validation, size limits and error
// messages carrying the offending field path.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	value, err := cueutil.CompileWithSchema(schema, data, "#Config", "config.cue")
//	if err != nil {
//	    return err // Error includes the CUE path of the invalid field
//	}
package cueutil
