// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EnvToSlice converts an environment map to a sorted "KEY=VALUE" slice.
// Sorting keeps subprocess environments deterministic across runs.
func EnvToSlice(env map[string]string) []string {
	keys := maps.Keys(env)
	slices.Sort(keys)

	out := make([]string, 0, len(env))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return out
}

// BuildEnv returns the host environment with extra bindings appended, as a
// fresh slice. Later entries win on duplicate keys, so extra overrides the
// host value without mutating the process environment.
func BuildEnv(extra map[string]string) []string {
	return append(os.Environ(), EnvToSlice(extra)...)
}
