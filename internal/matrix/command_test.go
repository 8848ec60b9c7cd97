// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skyhook-io/create-deployment-matrix/internal/config"
)

// baseConfig returns a validated-shape configuration for command building.
func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Tag = "v1.2.3"
	cfg.GithubToken = "tok"
	return cfg
}

// TestCommand_WithOverlay includes the overlay argument with the configured
// value.
func TestCommand_WithOverlay(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Overlay = "production"

	got := Command(cfg)
	want := CommandLine{
		"skyhook", "generate",
		"--dir", ".",
		"--output", "matrix",
		"--branch", "main",
		"--tag", "v1.2.3",
		"--overlay", "production",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Command() mismatch (-want +got):\n%s", diff)
	}
}

// TestCommand_WithoutOverlay omits the overlay argument entirely — not an
// empty-valued one — which the tool reads as "all environments".
func TestCommand_WithoutOverlay(t *testing.T) {
	t.Parallel()

	got := Command(baseConfig())
	if slices.Contains(got, "--overlay") {
		t.Errorf("Command() = %v, want no --overlay token at all", got)
	}
	if slices.Contains(got, "") {
		t.Errorf("Command() = %v, want no empty token", got)
	}
}

// TestCommand_Deterministic verifies two builds from the same config are
// identical.
func TestCommand_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Overlay = "staging"

	if diff := cmp.Diff(Command(cfg), Command(cfg)); diff != "" {
		t.Errorf("Command() not deterministic:\n%s", diff)
	}
}

// TestCommand_CustomToolBin verifies the binary substitution used by tests
// and air-gapped runners.
func TestCommand_CustomToolBin(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.ToolBin = "./bin/skyhook"

	got := Command(cfg)
	if got[0] != "./bin/skyhook" {
		t.Errorf("Command()[0] = %q, want the configured binary", got[0])
	}
}

// TestCommandLine_String renders the tokens space-joined for the shell.
func TestCommandLine_String(t *testing.T) {
	t.Parallel()

	line := CommandLine{"skyhook", "generate", "--tag", "v1"}
	if got := line.String(); got != "skyhook generate --tag v1" {
		t.Errorf("String() = %q", got)
	}
}
