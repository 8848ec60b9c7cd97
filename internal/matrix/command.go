// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"strings"

	"github.com/skyhook-io/create-deployment-matrix/internal/config"
)

// Fixed arguments of the discovery tool invocation. The directory argument
// is always the relative "." because the working directory is set on the
// subprocess itself, not passed as a path.
const (
	toolSubcommand = "generate"
	toolDirArg     = "."
	toolOutputKind = "matrix"
)

// CommandLine is the ordered token sequence of one tool invocation. It is
// built once per run and never modified afterwards.
type CommandLine []string

// Command deterministically constructs the tool invocation from a validated
// configuration:
//
//	<tool-bin> generate --dir . --output matrix --branch <branch> --tag <tag> [--overlay <overlay>]
//
// The overlay argument is appended only when an overlay is set; its absence
// means "all environments" to the tool, which is an observable behavioral
// difference, not an omission. No quoting is applied: the caller is
// responsible for supplying shell-safe values (simple alphanumeric tags,
// branches, and overlays need none).
func Command(cfg *config.Config) CommandLine {
	argv := CommandLine{
		cfg.ToolBin,
		toolSubcommand,
		"--dir", toolDirArg,
		"--output", toolOutputKind,
		"--branch", cfg.Branch,
		"--tag", cfg.Tag,
	}
	if cfg.Overlay != "" {
		argv = append(argv, "--overlay", cfg.Overlay)
	}
	return argv
}

// String renders the command line the way the shell will see it.
func (c CommandLine) String() string {
	return strings.Join(c, " ")
}
