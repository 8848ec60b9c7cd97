// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skyhook-io/create-deployment-matrix/internal/cueutil"
	"github.com/skyhook-io/create-deployment-matrix/internal/issue"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigDirName is the repo-local directory holding the config file.
	ConfigDirName = ".skyhook"
	// ConfigFileName is the name of the optional config file.
	ConfigFileName = "matrix.cue"
)

//go:embed config_schema.cue
var configSchema string

// Load resolves the run configuration with the following precedence
// (highest wins):
//
//  1. CLI flags
//  2. Environment: INPUT_* variables (GitHub Actions input convention),
//     plus GITHUB_TOKEN as a fallback for the credential
//  3. Repo-local config file <repo-path>/.skyhook/matrix.cue
//  4. Defaults
//
// flags may be nil for callers that resolve everything from the environment.
// Load does not validate the result; call Config.Validate before use.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("overlay", defaults.Overlay)
	v.SetDefault("branch", defaults.Branch)
	v.SetDefault("tag", defaults.Tag)
	v.SetDefault("github_token", defaults.GithubToken)
	v.SetDefault("repo_path", defaults.RepoPath)
	v.SetDefault("tool_bin", defaults.ToolBin)
	v.SetDefault("runtime", string(defaults.Runtime))
	v.SetDefault("timeout", defaults.Timeout)

	// GitHub Actions exposes each action input `x` as INPUT_X. The token
	// additionally falls back to the runner's GITHUB_TOKEN.
	bindings := map[string][]string{
		"overlay":      {"INPUT_OVERLAY"},
		"branch":       {"INPUT_BRANCH"},
		"tag":          {"INPUT_TAG"},
		"github_token": {"INPUT_GITHUB-TOKEN", "GITHUB_TOKEN"},
		"repo_path":    {"INPUT_REPO-PATH"},
		"tool_bin":     {"INPUT_TOOL-BIN"},
		"runtime":      {"INPUT_RUNTIME"},
		"timeout":      {"INPUT_TIMEOUT"},
	}
	for key, envVars := range bindings {
		if err := v.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		flagBindings := map[string]string{
			"overlay":      "overlay",
			"branch":       "branch",
			"tag":          "tag",
			"github_token": "github-token",
			"repo_path":    "repo-path",
			"tool_bin":     "tool-bin",
			"runtime":      "runtime",
			"timeout":      "timeout",
		}
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// The config file lives inside the repository the tool will run against,
	// so the repo path has to be resolved first from env/flags/defaults.
	repoPath := v.GetString("repo_path")
	cuePath := filepath.Join(repoPath, ConfigDirName, ConfigFileName)
	if fileExists(cuePath) {
		if err := loadCUEIntoViper(v, cuePath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cuePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the expected schema").
				WithSuggestion("Remove the file to fall back to defaults").
				Wrap(fmt.Errorf("%w: %w", issue.ErrConfigFile, err)).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &cfg, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper at config-file precedence
// (below env and flags, above defaults).
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.ParseAndDecode[map[string]any]([]byte(configSchema), data, "#Config", path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
