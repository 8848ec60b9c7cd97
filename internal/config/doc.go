// SPDX-License-Identifier: MPL-2.0

// Package config resolves the action's inputs from defaults, the optional
// repo-local CUE config file, INPUT_* environment variables (the GitHub
// Actions convention), and CLI flags, in that precedence order, and
// validates them before anything else runs.
package config
