// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestConfigError_WrapsSentinel verifies that ConfigError is detectable via
// errors.Is on the ErrConfig sentinel.
func TestConfigError_WrapsSentinel(t *testing.T) {
	t.Parallel()

	var err error = &ConfigError{Field: "tag", Reason: "must not be empty"}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("errors.Is(ConfigError, ErrConfig) = false, want true")
	}
	if errors.Is(err, ErrSubprocess) {
		t.Errorf("ConfigError must not match ErrSubprocess")
	}
}

// TestConfigError_MessageNamesField verifies the field name appears in the
// error message so the user knows which input to fix.
func TestConfigError_MessageNamesField(t *testing.T) {
	t.Parallel()

	err := &ConfigError{Field: "github-token", Reason: "must not be empty"}
	if got := err.Error(); !strings.Contains(got, "github-token") {
		t.Errorf("Error() = %q, want it to contain the field name", got)
	}
}

// TestSubprocessError_IncludesStderr verifies the tool's stderr is carried
// into the message for diagnostics.
func TestSubprocessError_IncludesStderr(t *testing.T) {
	t.Parallel()

	err := &SubprocessError{ExitCode: 2, Stderr: "no such tag: v9.9.9"}
	got := err.Error()
	if !strings.Contains(got, "exit code 2") {
		t.Errorf("Error() = %q, want it to contain the exit code", got)
	}
	if !strings.Contains(got, "no such tag: v9.9.9") {
		t.Errorf("Error() = %q, want it to contain stderr", got)
	}
}

// TestSubprocessError_WrapsSentinel verifies errors.Is classification.
func TestSubprocessError_WrapsSentinel(t *testing.T) {
	t.Parallel()

	var err error = &SubprocessError{ExitCode: 1}
	if !errors.Is(err, ErrSubprocess) {
		t.Errorf("errors.Is(SubprocessError, ErrSubprocess) = false, want true")
	}
}

// TestSubprocessError_CauseReachable verifies the underlying failure stays
// reachable through errors.Is alongside the sentinel, for launch errors and
// deadline hits alike.
func TestSubprocessError_CauseReachable(t *testing.T) {
	t.Parallel()

	cause := errors.New("fork/exec: no such file or directory")
	var err error = &SubprocessError{ExitCode: 1, Cause: cause}

	if !errors.Is(err, ErrSubprocess) {
		t.Errorf("errors.Is(SubprocessError, ErrSubprocess) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(SubprocessError, cause) = false, want true")
	}

	// Without a cause the sentinel must still match.
	var bare error = &SubprocessError{ExitCode: 2}
	if !errors.Is(bare, ErrSubprocess) {
		t.Errorf("errors.Is(bare SubprocessError, ErrSubprocess) = false, want true")
	}
}

// TestParseError_CauseReachable verifies the decode error stays reachable
// through errors.Is alongside the sentinel.
func TestParseError_CauseReachable(t *testing.T) {
	t.Parallel()

	cause := errors.New("invalid character 'n'")
	var err error = &ParseError{Raw: "not json", Cause: cause}

	if !errors.Is(err, ErrMatrixParse) {
		t.Errorf("errors.Is(ParseError, ErrMatrixParse) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(ParseError, cause) = false, want true")
	}
}

// TestParseError_CarriesRawOutput verifies the offending text survives into
// the error payload, per the normalizer contract.
func TestParseError_CarriesRawOutput(t *testing.T) {
	t.Parallel()

	err := &ParseError{Raw: "not json", Cause: errors.New("invalid character 'o'")}
	if !errors.Is(err, ErrMatrixParse) {
		t.Errorf("errors.Is(ParseError, ErrMatrixParse) = false, want true")
	}
	if got := err.Error(); !strings.Contains(got, "not json") {
		t.Errorf("Error() = %q, want it to contain the raw output", got)
	}
}

// TestClassify maps each taxonomy error to the issue describing it.
func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Id
	}{
		{"missing tag", &ConfigError{Field: "tag", Reason: "must not be empty"}, ConfigInvalidId},
		{"missing repo path", &ConfigError{Field: "repo-path", Reason: "does not exist"}, RepoPathNotFoundId},
		{"tool exit 1", &SubprocessError{ExitCode: 1, Stderr: "boom"}, ToolFailedId},
		{"tool empty output", &SubprocessError{ExitCode: 0}, ToolOutputEmptyId},
		{"tool not on PATH", &SubprocessError{ExitCode: 127, Stderr: "skyhook: command not found"}, ToolNotFoundId},
		{"bad json", &ParseError{Raw: "not json"}, MatrixParseFailedId},
		{"wrapped parse error", fmt.Errorf("run: %w", &ParseError{Raw: "x"}), MatrixParseFailedId},
		{"no shell", NewErrorContext().WithOperation("locating a shell").Wrap(ErrShellNotFound).BuildError(), ShellNotFoundId},
		{"config file invalid", fmt.Errorf("load configuration: %w", ErrConfigFile), ConfigFileParseErrorId},
		{"unknown", errors.New("boom"), UnexpectedFailureId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// TestGet_KnownIssues verifies every Id used by Classify has a catalog entry.
func TestGet_KnownIssues(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{
		ConfigInvalidId, RepoPathNotFoundId, ConfigFileParseErrorId,
		ToolNotFoundId, ToolFailedId, ToolOutputEmptyId,
		MatrixParseFailedId, ShellNotFoundId, UnexpectedFailureId,
	} {
		if Get(id) == nil {
			t.Errorf("Get(%d) = nil, want a catalog entry", id)
		}
	}
}
