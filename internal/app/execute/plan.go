// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"fmt"
	"os"

	"prog-cli/internal/issue"
	"prog-cli/pkg/alias"
	"prog-cli/pkg/invocation"
	"prog-cli/pkg/resolve"
)

// ErrInvalidRequest is the sentinel error wrapped by InvalidRequestError.
var ErrInvalidRequest = errors.New("invalid request")

type (
	// Request names what to run: a one-line target or a script file.
	// Exactly one of Target and ScriptPath must be set.
	Request struct {
		Target     string
		ScriptPath string
	}

	// InvalidRequestError is returned when a Request sets both or neither source.
	// It wraps ErrInvalidRequest for errors.Is() compatibility.
	InvalidRequestError struct {
		Reason string
	}

	// Plan is a parsed request and the commands it resolves to, in order.
	Plan struct {
		Invocations []invocation.Invocation
		Commands    []string
	}

	// Planner resolves requests against one alias dictionary.
	Planner struct {
		dict *alias.Dictionary
	}
)

// Validate checks that exactly one source is set.
func (r Request) Validate() error {
	switch {
	case r.Target != "" && r.ScriptPath != "":
		return &InvalidRequestError{Reason: "a target and a script cannot be combined"}
	case r.Target == "" && r.ScriptPath == "":
		return &InvalidRequestError{Reason: "no target or script given"}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, e.Reason)
}

// Unwrap returns ErrInvalidRequest so callers can use errors.Is for programmatic detection.
func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

// NewPlanner creates a Planner over dict.
func NewPlanner(dict *alias.Dictionary) *Planner {
	if dict == nil {
		dict = alias.New()
	}
	return &Planner{dict: dict}
}

// Plan parses the request and resolves every invocation. Any parse or
// resolution failure aborts the whole request; an empty plan is valid.
func (p *Planner) Plan(req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invs, err := p.parse(req)
	if err != nil {
		return nil, err
	}

	cmds, err := resolve.ResolveAll(invs, p.dict)
	if err != nil {
		return nil, resolveError(err)
	}
	return &Plan{Invocations: invs, Commands: cmds}, nil
}

func (p *Planner) parse(req Request) ([]invocation.Invocation, error) {
	var (
		invs     []invocation.Invocation
		err      error
		resource = "target"
	)
	if req.ScriptPath != "" {
		resource = req.ScriptPath
		data, readErr := os.ReadFile(req.ScriptPath)
		if readErr != nil {
			return nil, issue.NewErrorContext().
				WithOperation("read script").
				WithResource(req.ScriptPath).
				WithSuggestion("Check that the script file exists and is readable").
				Wrap(readErr).
				BuildError()
		}
		invs, err = invocation.ParseScript(string(data))
	} else {
		invs, err = invocation.ParseTargets(req.Target)
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse invocation").
			WithResource(resource).
			WithIssue(issue.InvalidInvocationId).
			Wrap(err).
			BuildError()
	}
	return invs, nil
}

func resolveError(err error) error {
	ctx := issue.NewErrorContext().WithOperation("resolve invocation").Wrap(err)
	switch {
	case errors.Is(err, alias.ErrAliasNotFound):
		ctx.WithIssue(issue.AliasNotFoundId).WithSuggestion("Run 'prog --list' to see the defined aliases")
	case errors.Is(err, resolve.ErrKindMismatch):
		ctx.WithIssue(issue.KindMismatchId)
	case errors.Is(err, invocation.ErrInvalidSyntax):
		ctx.WithIssue(issue.InvalidInvocationId)
	}
	return ctx.BuildError()
}
