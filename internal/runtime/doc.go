// SPDX-License-Identifier: MPL-2.0

// Package runtime executes resolved command strings.
//
// Two runtime implementations are available:
//   - native: splits the command on whitespace and runs the program directly
//     with os/exec, optionally attached to a pseudo-terminal
//   - virtual: runs the command through an embedded shell interpreter
//     (mvdan/sh), one interpreter per batch so builtins such as cd persist
//
// All runtimes implement the Runtime interface with Name(), Available(),
// Validate() and Execute(). RunPlan executes a whole plan sequentially and
// stops at the first command that fails.
//
// LoadEnvFile reads dotenv files whose variables are layered over the host
// environment of every command in a plan.
//
// No runtime performs shell expansion of the command text: a command such as
// "echo $HOME" passes the literal "$HOME" to echo in both runtimes.
package runtime
