// SPDX-License-Identifier: MPL-2.0

// Package execute turns a CLI request into a command plan: it loads the
// prog config document, builds the alias dictionary, parses the target or
// script, resolves every invocation and selects the runtime the plan runs on.
// Failures are returned as issue.ActionableError values linked to the help
// card that explains them.
package execute
