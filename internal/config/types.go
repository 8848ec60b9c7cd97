// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/skyhook-io/create-deployment-matrix/internal/issue"
)

const (
	// RuntimeNative runs the discovery tool through the host system shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs the discovery tool through the embedded mvdan/sh
	// interpreter.
	RuntimeVirtual RuntimeMode = "virtual"
)

// ErrInvalidRuntimeMode is the sentinel error wrapped by InvalidRuntimeModeError.
var ErrInvalidRuntimeMode = errors.New("invalid runtime mode")

type (
	// RuntimeMode specifies how the discovery tool subprocess is executed.
	RuntimeMode string

	// InvalidRuntimeModeError is returned when a RuntimeMode value is not
	// recognized. It wraps ErrInvalidRuntimeMode for errors.Is() compatibility.
	InvalidRuntimeModeError struct {
		Value RuntimeMode
	}

	// Config holds the resolved inputs for one matrix-generation run.
	Config struct {
		// Overlay restricts the matrix to one deployment environment.
		// Empty means all environments.
		Overlay string `mapstructure:"overlay"`
		// Branch is the branch the tool resolves configuration against.
		Branch string `mapstructure:"branch"`
		// Tag is the deployment tag. Required.
		Tag string `mapstructure:"tag"`
		// GithubToken is forwarded to the tool via GITHUB_TOKEN. Required,
		// treated as opaque, never logged.
		GithubToken string `mapstructure:"github_token"`
		// RepoPath is the checked-out repository the tool runs against.
		RepoPath string `mapstructure:"repo_path"`
		// ToolBin is the discovery tool binary to invoke.
		ToolBin string `mapstructure:"tool_bin"`
		// Runtime selects the subprocess execution mode.
		Runtime RuntimeMode `mapstructure:"runtime"`
		// Timeout bounds the subprocess wait. Zero means unbounded.
		Timeout time.Duration `mapstructure:"timeout"`
	}
)

// Error implements the error interface.
func (e *InvalidRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (must be %q or %q)", e.Value, RuntimeNative, RuntimeVirtual)
}

// Unwrap returns ErrInvalidRuntimeMode so callers can use errors.Is.
func (e *InvalidRuntimeModeError) Unwrap() error { return ErrInvalidRuntimeMode }

// IsValid returns whether the RuntimeMode is one of the known modes.
func (m RuntimeMode) IsValid() bool {
	return m == RuntimeNative || m == RuntimeVirtual
}

// DefaultConfig returns the configuration defaults applied before any file,
// environment, or flag value.
func DefaultConfig() *Config {
	return &Config{
		Branch:   "main",
		RepoPath: ".",
		ToolBin:  "skyhook",
		Runtime:  RuntimeNative,
		Timeout:  0,
	}
}

// Validate checks the resolved configuration, fail-fast: missing-value
// checks run before the filesystem check, and everything runs before any
// subprocess is started. Violations are reported as issue.ConfigError.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tag) == "" {
		return &issue.ConfigError{Field: "tag", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.GithubToken) == "" {
		return &issue.ConfigError{Field: "github-token", Reason: "must not be empty"}
	}
	if !c.Runtime.IsValid() {
		return &issue.ConfigError{Field: "runtime", Reason: (&InvalidRuntimeModeError{Value: c.Runtime}).Error()}
	}
	if c.Timeout < 0 {
		return &issue.ConfigError{Field: "timeout", Reason: "must not be negative"}
	}

	info, err := os.Stat(c.RepoPath)
	if err != nil {
		return &issue.ConfigError{Field: "repo-path", Reason: fmt.Sprintf("%s does not exist", c.RepoPath)}
	}
	if !info.IsDir() {
		return &issue.ConfigError{Field: "repo-path", Reason: fmt.Sprintf("%s is not a directory", c.RepoPath)}
	}

	return nil
}
