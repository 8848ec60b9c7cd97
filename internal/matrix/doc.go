// SPDX-License-Identifier: MPL-2.0

// Package matrix builds the discovery tool's command line and normalizes
// its output into the canonical deployment-matrix JSON handed to the CI
// platform. The matrix schema itself is owned by the tool; this package
// treats it as an opaque JSON value.
package matrix
