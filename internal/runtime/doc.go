// SPDX-License-Identifier: MPL-2.0

// Package runtime executes the discovery tool as a subprocess through a
// shell, captures its output in full, and enforces the invoker contract:
// non-zero exit or empty stdout is an unrecoverable failure for the run.
//
// Two runtimes are provided: native (the host system shell) and virtual
// (the embedded mvdan/sh interpreter, always available).
package runtime
