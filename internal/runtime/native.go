// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// NativeRuntime executes the tool using the system's default shell.
type NativeRuntime struct {
	// Shell overrides the default shell.
	Shell string
	// ShellArgs are arguments passed to the shell before the command line.
	ShellArgs []string
}

// NewNativeRuntime creates a new native runtime.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return RuntimeNameNative
}

// Available returns whether this runtime is available.
func (r *NativeRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// ExecuteCapture runs the invocation through the shell and captures its
// output. The call blocks until the subprocess terminates.
func (r *NativeRuntime) ExecuteCapture(inv *Invocation) *Result {
	shell, err := r.getShell()
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	args := r.getShellArgs(shell)
	args = append(args, inv.ShellLine())

	ctx := inv.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, shell, args...)

	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}

	cmd.Env = BuildEnv(inv.ExtraEnv)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := ExitCode(exitErr.ExitCode())
			if valid, verr := code.IsValid(); valid {
				result.ExitCode = code
			} else {
				// A signal-killed process reports -1 instead of a real
				// status. Record a generic failure and keep the detail.
				result.ExitCode = 1
				result.Error = verr
			}
			// Context cancellation kills the process, which reports as a
			// plain non-zero exit; surface the context error so the caller
			// can tell a timeout from a tool failure.
			if ctxErr := ctx.Err(); ctxErr != nil {
				result.Error = ctxErr
			}
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute command: %w", err)
		}
	}

	return result
}

// getShell determines which shell to use.
func (r *NativeRuntime) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// getShellArgs returns the arguments to pass to the shell.
func (r *NativeRuntime) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return r.ShellArgs
	}

	base := filepath.Base(shell)
	base = strings.TrimSuffix(base, ".exe")

	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
