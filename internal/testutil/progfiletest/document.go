// SPDX-License-Identifier: MPL-2.0

package progfiletest

import (
	"testing"

	"prog-cli/pkg/progfile"
)

// EntryOption appends an entry to a test document.
type EntryOption func(*progfile.Document)

// NewDocument creates a document holding the entries of opts, in order.
func NewDocument(opts ...EntryOption) *progfile.Document {
	doc := &progfile.Document{}
	for _, opt := range opts {
		opt(doc)
	}
	return doc
}

// WithCommand adds a scalar entry.
func WithCommand(key, cmd string) EntryOption {
	return func(d *progfile.Document) {
		d.Entries = append(d.Entries, progfile.Entry{Key: key, Value: progfile.Scalar(cmd)})
	}
}

// WithList adds a list entry.
func WithList(key string, cmds ...string) EntryOption {
	return func(d *progfile.Document) {
		d.Entries = append(d.Entries, progfile.Entry{Key: key, Value: progfile.List(cmds...)})
	}
}

// WithMap adds a nested document built from opts.
func WithMap(key string, opts ...EntryOption) EntryOption {
	return func(d *progfile.Document) {
		d.Entries = append(d.Entries, progfile.Entry{Key: key, Value: progfile.Map(NewDocument(opts...))})
	}
}

// WriteConfig encodes doc in format into dir and returns the written path.
func WriteConfig(t testing.TB, dir string, format progfile.Format, doc *progfile.Document) string {
	t.Helper()
	path, err := progfile.Write(dir, format, doc)
	if err != nil {
		t.Fatalf("failed to write %s config: %v", format, err)
	}
	return path
}
