// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ConfigNotFoundId Id = iota + 1
	ConfigParseErrorId
	AliasNotFoundId
	InvalidInvocationId
	KindMismatchId
	CommandFailedId
	RuntimeNotAvailableId
	SettingsLoadFailedId
	ConfigExistsId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalogued failure with a Markdown explanation shown to the user.
	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's Markdown with the glamour style at stylePath
// ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# No prog config found!

prog looks for a file named ` + "`prog.yml`, `prog.json`, `prog.toml` or `prog.cue`" + ` in the
current directory (or the directory given with ` + "`-p`" + `).

## Things you can try:
- Generate one from a template:
~~~
$ prog --generate --template go
~~~

- Or point prog at the project directory:
~~~
$ prog -p /path/to/project build
~~~`,
	}

	configParseErrorIssue = &Issue{
		id: ConfigParseErrorId,
		mdMsg: `
# Failed to read the prog config!

The config file could not be decoded, or one of its values is not a command,
a list of commands or a nested map.

## Things you can try:
- Check the file for syntax errors near the reported line
- Every alias value must be a string, a list of strings or a map
- Function aliases are written ` + "`name(N)`" + `, e.g. ` + "`run(1): \"./bin/app $1\"`",
	}

	aliasNotFoundIssue = &Issue{
		id: AliasNotFoundId,
		mdMsg: `
# Alias not found!

The invocation names an alias that is not defined in the prog config.

## Things you can try:
- List the available aliases:
~~~
$ prog --list
~~~

- Names inside a scope are looked up in that scope's map:
~~~
$ prog configure.release
~~~`,
	}

	invalidInvocationIssue = &Issue{
		id: InvalidInvocationId,
		mdMsg: `
# Invalid invocation!

## Supported forms:
- ` + "`name`" + ` runs a command alias
- ` + "`name(a, b)`" + ` runs a function alias with arguments
- ` + "`scope.name`" + ` runs an alias inside a nested map
- ` + "`scope.{a, b}`" + ` runs several aliases of one scope
- ` + "`name[0, 2]`" + ` runs selected commands of a list alias

Separate several invocations with ` + "`;`" + ` in a script file.`,
	}

	kindMismatchIssue = &Issue{
		id: KindMismatchId,
		mdMsg: `
# The invocation does not match the alias!

A plain name expects a command or a list, a call expects a function alias,
a scope expects a nested map and an index expects a list.

## Things you can try:
- Check how the alias is defined:
~~~
$ prog --list
~~~`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# Command failed!

A resolved command exited with a non-zero status; the remaining commands were skipped.

## Things you can try:
- Print the resolved commands without running them:
~~~
$ prog --dry-run <invocation>
~~~

- Run with ` + "`-v`" + ` to see each command before it runs`,
	}

	runtimeNotAvailableIssue = &Issue{
		id: RuntimeNotAvailableId,
		mdMsg: `
# Runtime not available!

## Things you can try:
- Use the built-in shell interpreter:
~~~
$ prog --runtime virtual build
~~~

- Or set it as the default in your settings:
~~~cue
default_runtime: "virtual"
~~~`,
	}

	settingsLoadFailedIssue = &Issue{
		id: SettingsLoadFailedId,
		mdMsg: `
# Failed to load settings!

## Things you can try:
- Show the effective settings and the file they come from:
~~~
$ prog settings show
~~~

- Check ` + "`PROG_*`" + ` environment variables for invalid values`,
	}

	configExistsIssue = &Issue{
		id: ConfigExistsId,
		mdMsg: `
# A prog config already exists!

## Things you can try:
- Overwrite it:
~~~
$ prog --generate --force
~~~

- Or convert it to another format:
~~~
$ prog --convert --format toml
~~~`,
	}

	catalog = []*Issue{
		configNotFoundIssue,
		configParseErrorIssue,
		aliasNotFoundIssue,
		invalidInvocationIssue,
		kindMismatchIssue,
		commandFailedIssue,
		runtimeNotAvailableIssue,
		settingsLoadFailedIssue,
		configExistsIssue,
	}

	issues = indexIssues(catalog)
)

func indexIssues(list []*Issue) map[Id]*Issue {
	m := make(map[Id]*Issue, len(list))
	for _, i := range list {
		m[i.Id()] = i
	}
	return m
}

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	return slices.Clone(catalog)
}

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
