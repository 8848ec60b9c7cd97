// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skyhook-io/create-deployment-matrix/internal/issue"
)

// Matrix is the normalized tool output: the decoded JSON value and its
// canonical single-encoded string form. The value's schema belongs to the
// tool; it is carried opaquely to the publisher.
type Matrix struct {
	// Value is the decoded JSON value (object, array, number, boolean, or
	// null after normalization; a string only if the tool's output was
	// encoded more than twice, which is surfaced as-is).
	Value any
	// JSON is the compact canonical form, preserving the tool's key order.
	JSON string
}

// Normalize trims the captured stdout and decodes it as a JSON value,
// tolerating one level of accidental double-encoding: when the decoded
// value is a JSON string, its content is decoded a second time and that
// result is used instead. Exactly one unwrap pass is attempted; deeper
// nesting is not detected and reaches the publisher as-is.
//
// Decode failures — including failure of the unwrap pass — are reported as
// issue.ParseError carrying the raw text for diagnostics.
func Normalize(raw string) (*Matrix, error) {
	text := strings.TrimSpace(raw)

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, &issue.ParseError{Raw: raw, Cause: err}
	}

	// Dispatch on the decoded variant: only the string case means the tool
	// double-encoded its document; every other variant is used as-is.
	switch wrapped := value.(type) {
	case string:
		var inner any
		if err := json.Unmarshal([]byte(wrapped), &inner); err != nil {
			return nil, &issue.ParseError{Raw: raw, Cause: fmt.Errorf("unwrapping double-encoded output: %w", err)}
		}
		value = inner
		text = wrapped
	case map[string]any, []any, float64, bool, nil:
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(text)); err != nil {
		return nil, &issue.ParseError{Raw: raw, Cause: err}
	}

	return &Matrix{Value: value, JSON: compact.String()}, nil
}

// Pretty renders the canonical form indented for human-readable reports,
// preserving the tool's key order.
func (m *Matrix) Pretty() string {
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(m.JSON), "", "  "); err != nil {
		return m.JSON
	}
	return out.String()
}
