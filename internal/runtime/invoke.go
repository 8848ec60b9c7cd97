// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"strings"

	"github.com/skyhook-io/create-deployment-matrix/internal/issue"
)

// ErrEmptyOutput is reported when the tool exits successfully but writes
// nothing (post-trim) to stdout.
var ErrEmptyOutput = errors.New("tool produced no output on stdout")

// Invoke runs the invocation on the given runtime and enforces the invoker
// contract: a non-zero exit, a failure to launch, or a successful exit with
// empty stdout all fail the run with an issue.SubprocessError. There is no
// retry. When inv.Timeout is positive the subprocess runs under a deadline;
// otherwise Invoke suspends until the subprocess terminates.
//
// On success the returned Result carries the complete captured stdout and
// stderr, owned by the caller.
func Invoke(rt Runtime, inv *Invocation) (*Result, error) {
	if inv.Timeout > 0 {
		parent := inv.Context
		if parent == nil {
			parent = context.Background()
		}
		ctx, cancel := context.WithTimeout(parent, inv.Timeout)
		defer cancel()
		inv.Context = ctx
	}

	res := rt.ExecuteCapture(inv)

	stderr := strings.TrimSpace(res.ErrOutput)

	if res.Error != nil {
		return nil, &issue.SubprocessError{
			ExitCode: int(res.ExitCode),
			Stderr:   stderr,
			Cause:    res.Error,
		}
	}
	if !res.ExitCode.IsSuccess() {
		return nil, &issue.SubprocessError{
			ExitCode: int(res.ExitCode),
			Stderr:   stderr,
		}
	}
	if strings.TrimSpace(res.Output) == "" {
		return nil, &issue.SubprocessError{
			ExitCode: 0,
			Stderr:   stderr,
			Cause:    ErrEmptyOutput,
		}
	}

	return res, nil
}
