// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

// requireNative skips when the host has no usable shell for the native
// runtime (e.g. stripped-down CI images).
func requireNative(t *testing.T) *NativeRuntime {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("native runtime tests assume a POSIX shell")
	}
	rt := NewNativeRuntime()
	if !rt.Available() {
		t.Skip("no shell available for the native runtime")
	}
	return rt
}

// TestNativeRuntime_CapturesStdout verifies the system shell path captures
// stdout in full.
func TestNativeRuntime_CapturesStdout(t *testing.T) {
	rt := requireNative(t)

	res := rt.ExecuteCapture(&Invocation{
		Argv: []string{"echo", `{"include":[]}`},
	})
	if res.Error != nil {
		t.Fatalf("ExecuteCapture() error = %v, want nil", res.Error)
	}
	if got := strings.TrimSpace(res.Output); got != `{"include":[]}` {
		t.Errorf("Output = %q, want the echoed JSON", got)
	}
}

// TestNativeRuntime_PropagatesExitCode verifies exit statuses survive the
// shell boundary.
func TestNativeRuntime_PropagatesExitCode(t *testing.T) {
	rt := requireNative(t)

	res := rt.ExecuteCapture(&Invocation{
		Argv: []string{"exit", "7"},
	})
	if res.ExitCode != 7 {
		t.Errorf("ExitCode = %s, want 7", res.ExitCode)
	}
}

// TestNativeRuntime_SignalKilled verifies a signal-terminated subprocess,
// which has no real exit status, surfaces an invalid-exit-code error instead
// of the -1 the exec layer reports.
func TestNativeRuntime_SignalKilled(t *testing.T) {
	rt := requireNative(t)

	res := rt.ExecuteCapture(&Invocation{
		Argv: []string{"kill", "-9", "$$"},
	})
	if res.Error == nil {
		t.Fatal("ExecuteCapture() error = nil, want invalid-exit-code failure")
	}
	if !errors.Is(res.Error, ErrInvalidExitCode) {
		t.Errorf("Error = %v, want it to match ErrInvalidExitCode", res.Error)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %s, want the generic failure status 1", res.ExitCode)
	}
}

// TestNativeRuntime_ExtraEnv verifies the credential binding reaches the
// subprocess.
func TestNativeRuntime_ExtraEnv(t *testing.T) {
	rt := requireNative(t)

	res := rt.ExecuteCapture(&Invocation{
		Argv:     []string{"printf", "%s", "$GITHUB_TOKEN"},
		ExtraEnv: map[string]string{"GITHUB_TOKEN": "tok-456"},
	})
	if res.Error != nil {
		t.Fatalf("ExecuteCapture() error = %v, want nil", res.Error)
	}
	if res.Output != "tok-456" {
		t.Errorf("Output = %q, want the injected token value", res.Output)
	}
}

// TestNativeRuntime_ShellArgsForKnownShells covers the per-shell argument
// selection without launching anything.
func TestNativeRuntime_ShellArgsForKnownShells(t *testing.T) {
	t.Parallel()

	rt := NewNativeRuntime()
	tests := []struct {
		shell string
		want  string
	}{
		{"/bin/bash", "-c"},
		{"/usr/bin/zsh", "-c"},
		{"cmd.exe", "/C"},
		{"pwsh", "-NoProfile"},
	}
	for _, tt := range tests {
		args := rt.getShellArgs(tt.shell)
		if len(args) == 0 || args[0] != tt.want {
			t.Errorf("getShellArgs(%q) = %v, want first arg %q", tt.shell, args, tt.want)
		}
	}
}

// TestSelect_KnownAndUnknown covers runtime selection.
func TestSelect_KnownAndUnknown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{RuntimeNameNative, RuntimeNameVirtual} {
		rt, err := Select(name)
		if err != nil {
			t.Errorf("Select(%q) error = %v, want nil", name, err)
			continue
		}
		if rt.Name() != name {
			t.Errorf("Select(%q).Name() = %q", name, rt.Name())
		}
	}

	if _, err := Select("container"); err == nil {
		t.Error(`Select("container") = nil error, want unknown runtime error`)
	}
}
