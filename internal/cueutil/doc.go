// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the shared CUE parsing flow (compile schema,
// unify with user data, validate, decode) and error formatting that turns
// CUE validation errors into file-and-path prefixed messages.
package cueutil
