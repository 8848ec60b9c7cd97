// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/skyhook-io/create-deployment-matrix/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("plain error uses its message", func(t *testing.T) {
		t.Parallel()
		err := errors.New("something broke")
		if got := formatErrorForDisplay(err, false); got != "something broke" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "something broke")
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		t.Parallel()
		err := issue.NewErrorContext().
			WithOperation("resolve inputs").
			WithSuggestion("Set the tag input").
			BuildError()

		got := formatErrorForDisplay(err, false)
		if got == "" {
			t.Fatal("formatErrorForDisplay() returned empty string")
		}
		// Format surfaces the operation and the suggestion, not just Error().
		for _, want := range []string{"resolve inputs", "Set the tag input"} {
			if !strings.Contains(got, want) {
				t.Errorf("formatErrorForDisplay() = %q, missing %q", got, want)
			}
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	t.Run("message from wrapped error", func(t *testing.T) {
		t.Parallel()
		inner := errors.New("tool exploded")
		err := &ExitError{Code: 1, Err: inner}
		if err.Error() != "tool exploded" {
			t.Errorf("Error() = %q, want %q", err.Error(), "tool exploded")
		}
		if !errors.Is(err, inner) {
			t.Error("ExitError does not unwrap to its cause")
		}
	})

	t.Run("message from code alone", func(t *testing.T) {
		t.Parallel()
		err := &ExitError{Code: 3}
		if err.Error() != "exit status 3" {
			t.Errorf("Error() = %q, want %q", err.Error(), "exit status 3")
		}
	})
}
