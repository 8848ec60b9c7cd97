// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Runtime type names.
const (
	RuntimeNameNative  = "native"
	RuntimeNameVirtual = "virtual"
)

type (
	// Invocation describes one subprocess run. It is built once per pipeline
	// run and not reused.
	Invocation struct {
		// Context is the Go context for cancellation. Nil means Background.
		Context context.Context
		// Argv is the ordered command-line token sequence. Tokens are joined
		// with spaces into the shell command; callers must supply shell-safe
		// values (documented constraint for simple alphanumeric arguments).
		Argv []string
		// Dir is the working directory for the subprocess.
		Dir string
		// ExtraEnv is merged over the host environment into a fresh
		// environment for the subprocess; the process environment itself is
		// never mutated.
		ExtraEnv map[string]string
		// Timeout bounds the subprocess wait when positive. Zero means the
		// invoker suspends until the subprocess terminates, however long
		// that takes.
		Timeout time.Duration
	}

	// Result contains the outcome of a subprocess run. It is produced
	// exactly once per run and handed to the normalizer by value.
	Result struct {
		// ExitCode is the subprocess exit status.
		ExitCode ExitCode
		// Error is set when the subprocess could not be run at all.
		Error error
		// Output is the complete captured stdout.
		Output string
		// ErrOutput is the complete captured stderr.
		ErrOutput string
	}

	// Runtime defines the interface for subprocess execution.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Available returns whether this runtime can run on the current system.
		Available() bool
		// ExecuteCapture runs the invocation and captures stdout/stderr fully
		// and synchronously.
		ExecuteCapture(inv *Invocation) *Result
	}
)

// ShellLine joins the invocation tokens into the command string handed to
// the shell. No quoting is applied.
func (inv *Invocation) ShellLine() string {
	return strings.Join(inv.Argv, " ")
}

// Select returns the runtime with the given name, or an error when the name
// is unknown.
func Select(name string) (Runtime, error) {
	switch name {
	case RuntimeNameNative:
		return NewNativeRuntime(), nil
	case RuntimeNameVirtual:
		return NewVirtualRuntime(), nil
	default:
		return nil, fmt.Errorf("unknown runtime %q", name)
	}
}
