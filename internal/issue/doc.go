// SPDX-License-Identifier: MPL-2.0

// Package issue defines the failure taxonomy for a matrix-generation run
// (configuration, subprocess, parse) and the user-facing error rendering
// built on top of it. Every failure in the pipeline is expressed as one of
// the typed errors here so the publisher can classify it exactly once.
package issue
