// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	appexec "prog-cli/internal/app/execute"
	"prog-cli/internal/runtime"
	"prog-cli/pkg/alias"

	"github.com/charmbracelet/lipgloss/tree"
)

// renderPlan prints the resolved commands one per line as shell-quoted
// words, so the output can be piped to a shell.
func renderPlan(w io.Writer, commands []string) error {
	for _, c := range commands {
		line, err := runtime.ShellQuote(c)
		if err != nil {
			return fmt.Errorf("render %q: %w", c, err)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// renderAliasTree prints the dictionary as a tree headed by title.
func renderAliasTree(w io.Writer, title string, dict *alias.Dictionary) error {
	root := tree.Root(treeRootStyle.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumeratorStyle)

	// parents[d] is the tree node holding aliases of depth d.
	parents := []*tree.Tree{root}
	err := dict.Walk(func(_ string, depth int, a alias.Alias) error {
		parents = parents[:depth+1]
		parent := parents[depth]
		name := CmdStyle.Render(a.Key.String())

		switch a.Value.Kind {
		case alias.ValueCommand:
			parent.Child(name + "  " + aliasValueStyle.Render(a.Value.Command))
		case alias.ValueList:
			node := tree.Root(name).Enumerator(tree.RoundedEnumerator).EnumeratorStyle(treeEnumeratorStyle)
			for i, c := range a.Value.List {
				node.Child(VerboseHighlightStyle.Render(fmt.Sprintf("[%d]", i)) + " " + aliasValueStyle.Render(c))
			}
			parent.Child(node)
		case alias.ValueMap:
			node := tree.Root(name).Enumerator(tree.RoundedEnumerator).EnumeratorStyle(treeEnumeratorStyle)
			parent.Child(node)
			parents = append(parents, node)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, root.String())
	return nil
}

// completeTargets returns the dotted path of every alias in the config
// found in dir, for shell completion.
func completeTargets(dir string) []string {
	_, dict, err := appexec.LoadDictionary(dir)
	if err != nil {
		return nil
	}

	var targets []string
	_ = dict.Walk(func(path string, _ int, a alias.Alias) error {
		if a.Value.Kind != alias.ValueMap {
			targets = append(targets, path)
		}
		return nil
	})
	return targets
}
