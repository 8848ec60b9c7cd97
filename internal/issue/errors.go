// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig is the sentinel error wrapped by ConfigError.
	ErrConfig = errors.New("invalid configuration")
	// ErrSubprocess is the sentinel error wrapped by SubprocessError.
	ErrSubprocess = errors.New("discovery tool failed")
	// ErrMatrixParse is the sentinel error wrapped by ParseError.
	ErrMatrixParse = errors.New("matrix output not parseable")

	// ErrShellNotFound is reported when the selected runtime has no usable
	// shell on the host.
	ErrShellNotFound = errors.New("no usable shell found")
	// ErrConfigFile is reported when the repo-local config file exists but
	// cannot be parsed or fails schema validation.
	ErrConfigFile = errors.New("config file invalid")
)

type (
	// ConfigError is returned when a required input is missing or invalid.
	// It is always raised before any subprocess is started.
	ConfigError struct {
		// Field is the input name as the user knows it (e.g. "tag", "repo-path").
		Field string
		// Reason describes why the value was rejected.
		Reason string
	}

	// SubprocessError is returned when the discovery tool exits non-zero or
	// exits zero without producing any output. It wraps ErrSubprocess.
	SubprocessError struct {
		// ExitCode is the tool's exit status.
		ExitCode int
		// Stderr is the tool's captured standard error, trimmed.
		Stderr string
		// Cause is set when the process could not be started or was cut short
		// (e.g. by the configured timeout) rather than failing on its own.
		Cause error
	}

	// ParseError is returned when the tool's output cannot be decoded as a
	// JSON value, including failure of the single double-encoding unwrap
	// pass. It carries the raw offending text for diagnostics.
	ParseError struct {
		// Raw is the output that failed to decode.
		Raw string
		// Cause is the underlying decode error.
		Cause error
	}
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrConfig so callers can use errors.Is for classification.
func (e *ConfigError) Unwrap() error { return ErrConfig }

// Error implements the error interface.
func (e *SubprocessError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "discovery tool failed with exit code %d", e.ExitCode)
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	if e.Stderr != "" {
		msg.WriteString("\nstderr:\n")
		msg.WriteString(e.Stderr)
	}
	return msg.String()
}

// Unwrap returns ErrSubprocess plus the cause when one is set, so errors.Is
// works both for classification and for the underlying failure (a launch
// error, empty output, or a timeout's context.DeadlineExceeded).
func (e *SubprocessError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrSubprocess, e.Cause}
	}
	return []error{ErrSubprocess}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to parse matrix output")
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	fmt.Fprintf(&msg, "\nraw output:\n%s", e.Raw)
	return msg.String()
}

// Unwrap returns ErrMatrixParse plus the decode error when one is set, so
// errors.Is works both for classification and for the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMatrixParse, e.Cause}
	}
	return []error{ErrMatrixParse}
}

// Classify maps any pipeline error to the Id of the issue describing it, so
// the CLI can render guidance alongside the error message. Unrecognized
// errors map to UnexpectedFailureId.
func Classify(err error) Id {
	if errors.Is(err, ErrShellNotFound) {
		return ShellNotFoundId
	}
	if errors.Is(err, ErrConfigFile) {
		return ConfigFileParseErrorId
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Field == "repo-path" {
			return RepoPathNotFoundId
		}
		return ConfigInvalidId
	}

	var subErr *SubprocessError
	if errors.As(err, &subErr) {
		if subErr.ExitCode == 0 {
			return ToolOutputEmptyId
		}
		// 127 is the shell's command-not-found status.
		if subErr.ExitCode == 127 {
			return ToolNotFoundId
		}
		return ToolFailedId
	}

	if errors.Is(err, ErrMatrixParse) {
		return MatrixParseFailedId
	}

	return UnexpectedFailureId
}
