// SPDX-License-Identifier: MPL-2.0

// Package github publishes run results to the GitHub Actions host: step
// outputs via the $GITHUB_OUTPUT file protocol, Markdown run reports via
// $GITHUB_STEP_SUMMARY, and failure signals via workflow commands. It is
// the terminal sink of the pipeline and never raises; channel write
// failures are logged and swallowed.
package github
