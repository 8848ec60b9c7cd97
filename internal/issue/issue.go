// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ConfigInvalidId Id = iota + 1
	RepoPathNotFoundId
	ConfigFileParseErrorId
	ToolNotFoundId
	ToolFailedId
	ToolOutputEmptyId
	MatrixParseFailedId
	ShellNotFoundId
	UnexpectedFailureId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look up the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Render() (string, error) {
	return render(string(i.mdMsg), "auto")
}

var (
	render = glamour.Render

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# Invalid inputs!

A required input is missing or empty.

## Required inputs:
- **tag**: the deployment tag to resolve the matrix for
- **github-token**: the token forwarded to the discovery tool

## Things you can try:
- Check the step's ` + "`with:`" + ` block in your workflow file
- When running locally, pass --tag and --github-token flags`,
	}

	repoPathNotFoundIssue = &Issue{
		id: RepoPathNotFoundId,
		mdMsg: `
# Repository path not found!

The configured repo-path does not exist on this runner.

## Things you can try:
- Make sure actions/checkout runs before this step
- If the repository is checked out into a subdirectory, set:
~~~yaml
with:
  repo-path: path/to/checkout
~~~`,
	}

	configFileParseErrorIssue = &Issue{
		id: ConfigFileParseErrorId,
		mdMsg: `
# Failed to parse the config file!

The repository's .skyhook/matrix.cue file contains syntax errors or values
that do not match the expected schema.

## Things you can try:
- Check the error message above for the specific field
- Validate the file with the cue command-line tool
- Remove the file to fall back to defaults`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Discovery tool not found!

The skyhook binary is not on the runner's PATH.

## Things you can try:
- Add an install step before this action
- Point the action at a different binary:
~~~yaml
with:
  tool-bin: ./bin/skyhook
~~~`,
	}

	toolFailedIssue = &Issue{
		id: ToolFailedId,
		mdMsg: `
# Discovery tool failed!

The skyhook invocation exited with a non-zero status.

## Things you can try:
- Check the tool's stderr in the error message above
- Run the same command locally against your checkout
- Verify the tag exists and the token has read access to the repository`,
	}

	toolOutputEmptyIssue = &Issue{
		id: ToolOutputEmptyId,
		mdMsg: `
# Discovery tool produced no output!

The tool exited successfully but wrote nothing to stdout, so there is no
matrix to publish.

## Things you can try:
- Run the tool locally with the same arguments and inspect its output
- Check whether the selected overlay matches any environment`,
	}

	matrixParseFailedIssue = &Issue{
		id: MatrixParseFailedId,
		mdMsg: `
# Matrix output not parseable!

The tool's stdout could not be decoded as a JSON document.

## Things you can try:
- Inspect the raw output included in the error message above
- Make sure the tool is not writing log lines to stdout
- Upgrade the tool if its output format changed`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a suitable shell for the 'native' runtime.

## Shells we look for:
- Linux/macOS: $SHELL, bash, sh
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Use the built-in shell instead:
~~~
$ create-deployment-matrix --runtime virtual ...
~~~`,
	}

	unexpectedFailureIssue = &Issue{
		id: UnexpectedFailureId,
		mdMsg: `
# Unexpected failure!

Something failed outside the known failure classes.

## Things you can try:
- Re-run with --verbose for the full error chain
- Open an issue with the output attached`,
	}

	issues = map[Id]*Issue{
		configInvalidIssue.Id():        configInvalidIssue,
		repoPathNotFoundIssue.Id():     repoPathNotFoundIssue,
		configFileParseErrorIssue.Id(): configFileParseErrorIssue,
		toolNotFoundIssue.Id():         toolNotFoundIssue,
		toolFailedIssue.Id():           toolFailedIssue,
		toolOutputEmptyIssue.Id():      toolOutputEmptyIssue,
		matrixParseFailedIssue.Id():    matrixParseFailedIssue,
		shellNotFoundIssue.Id():        shellNotFoundIssue,
		unexpectedFailureIssue.Id():    unexpectedFailureIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
