// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/skyhook-io/create-deployment-matrix/internal/config"
	"github.com/skyhook-io/create-deployment-matrix/internal/matrix"
)

// renderDryRun prints the resolved run without executing it: the inputs as
// the tool will see them, the runtime, and the exact command line. The
// credential is reported only by presence; its value never reaches output.
func renderDryRun(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Tag:"), cfg.Tag)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Branch:"), cfg.Branch)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Environments:"), overlayLabel(cfg.Overlay))
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Runtime:"), string(cfg.Runtime))
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("WorkDir:"), cfg.RepoPath)

	if cfg.Timeout > 0 {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Timeout:"), cfg.Timeout)
	}

	token := "not set"
	if cfg.GithubToken != "" {
		token = "set (redacted)"
	}
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Token:"), token)

	fmt.Fprintln(w)
	fmt.Fprintln(w, VerboseHighlightStyle.Render("  Command:"))
	fmt.Fprintf(w, "    %s\n", CmdStyle.Render(matrix.Command(cfg).String()))
	fmt.Fprintln(w)
}

// overlayLabel mirrors the report wording: "all" when no overlay narrows
// the matrix.
func overlayLabel(overlay string) string {
	if overlay == "" {
		return "all"
	}
	return overlay
}
