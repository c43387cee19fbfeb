// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"

	"prog-cli/internal/issue"
	"prog-cli/pkg/alias"
	"prog-cli/pkg/progfile"
)

// LoadDictionary finds the config document in dir and builds its alias dictionary.
func LoadDictionary(dir string) (*progfile.File, *alias.Dictionary, error) {
	file, err := progfile.Load(dir)
	if err != nil {
		if errors.Is(err, progfile.ErrConfigNotFound) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("find prog config").
				WithResource(dir).
				WithIssue(issue.ConfigNotFoundId).
				WithSuggestion("Run 'prog --generate' to create one from a template").
				Wrap(err).
				BuildError()
		}
		return nil, nil, issue.NewErrorContext().
			WithOperation("load prog config").
			WithIssue(issue.ConfigParseErrorId).
			Wrap(err).
			BuildError()
	}

	dict, err := alias.FromDocument(file.Document)
	if err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("load prog config").
			WithResource(file.Path).
			WithIssue(issue.ConfigParseErrorId).
			Wrap(err).
			BuildError()
	}
	return file, dict, nil
}
