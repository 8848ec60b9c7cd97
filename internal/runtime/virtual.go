// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes the tool using the embedded mvdan/sh interpreter.
// It needs no shell binary on the host, which makes it the hermetic choice
// for minimal runner images and for tests.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return RuntimeNameVirtual
}

// Available returns whether this runtime is available.
func (r *VirtualRuntime) Available() bool {
	// Always available as it's built-in.
	return true
}

// ExecuteCapture runs the invocation in the interpreter and captures its
// output. The call blocks until the command terminates.
func (r *VirtualRuntime) ExecuteCapture(inv *Invocation) *Result {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(inv.ShellLine()), "command")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to parse command: %w", err)}
	}

	var stdout, stderr bytes.Buffer

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(BuildEnv(inv.ExtraEnv)...)),
		interp.StdIO(nil, &stdout, &stderr),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	execCtx := inv.Context
	if execCtx == nil {
		execCtx = context.Background()
	}

	err = runner.Run(execCtx, prog)
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = ExitCode(exitStatus)
			if ctxErr := execCtx.Err(); ctxErr != nil {
				result.Error = ctxErr
			}
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("command execution failed: %w", err)
		}
	}

	return result
}
