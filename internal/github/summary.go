// SPDX-License-Identifier: MPL-2.0

package github

import (
	"fmt"
	"strings"
)

// RunSummary carries everything the run report echoes back to the user.
// The credential is deliberately absent: it must never appear in a report.
type RunSummary struct {
	Tag     string
	Branch  string
	Overlay string

	// MatrixPretty is the indented matrix rendering; set on success only.
	MatrixPretty string

	// Err is the run's failure, nil on success.
	Err error
}

// OverlayLabel is the overlay as echoed in reports: the literal value, or
// "all" when no overlay restricts the matrix.
func (s *RunSummary) OverlayLabel() string {
	if s.Overlay == "" {
		return "all"
	}
	return s.Overlay
}

// Markdown renders the step-summary report for either outcome. Exactly one
// report is produced per run.
func (s *RunSummary) Markdown() string {
	var md strings.Builder

	if s.Err != nil {
		md.WriteString("## Deployment matrix — failed\n\n")
		fmt.Fprintf(&md, "- **tag**: `%s`\n", s.Tag)
		fmt.Fprintf(&md, "- **branch**: `%s`\n", s.Branch)
		fmt.Fprintf(&md, "- **environments**: %s\n\n", s.OverlayLabel())
		md.WriteString("```\n")
		md.WriteString(strings.TrimSpace(s.Err.Error()))
		md.WriteString("\n```\n")
		return md.String()
	}

	md.WriteString("## Deployment matrix\n\n")
	fmt.Fprintf(&md, "- **tag**: `%s`\n", s.Tag)
	fmt.Fprintf(&md, "- **branch**: `%s`\n", s.Branch)
	fmt.Fprintf(&md, "- **environments**: %s\n\n", s.OverlayLabel())
	md.WriteString("```json\n")
	md.WriteString(strings.TrimSpace(s.MatrixPretty))
	md.WriteString("\n```\n")
	return md.String()
}
