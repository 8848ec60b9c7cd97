// SPDX-License-Identifier: MPL-2.0

// Package generate orchestrates a matrix-generation run end to end:
// validate the resolved configuration, invoke the discovery tool on a
// runtime, normalize its stdout into the matrix, and publish the result.
// Every run terminates in exactly one published report, success or failure.
package generate
