// SPDX-License-Identifier: MPL-2.0

package github

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Environment variables of the GitHub Actions runner contract.
const (
	// EnvOutputFile names the file step outputs are appended to.
	EnvOutputFile = "GITHUB_OUTPUT"
	// EnvSummaryFile names the file the step summary is appended to.
	EnvSummaryFile = "GITHUB_STEP_SUMMARY"
	// EnvActions is "true" when running inside GitHub Actions.
	EnvActions = "GITHUB_ACTIONS"
)

// Publisher writes to the host platform's output channels. A zero-value
// Publisher is not usable; construct one with NewPublisher.
type Publisher struct {
	outputPath  string
	summaryPath string
	// cmdOut receives workflow commands and the local-run fallback output.
	cmdOut io.Writer
	logger *log.Logger
}

// NewPublisher resolves the platform channels from the environment. Outside
// GitHub Actions the output and summary paths are empty and publishing
// degrades to plain stdout, keeping the binary usable as a local CLI.
func NewPublisher(logger *log.Logger) *Publisher {
	return NewPublisherAt(os.Getenv(EnvOutputFile), os.Getenv(EnvSummaryFile), os.Stdout, logger)
}

// NewPublisherAt constructs a Publisher with explicit channels. Empty paths
// select the local stdout fallback for the corresponding channel.
func NewPublisherAt(outputPath, summaryPath string, cmdOut io.Writer, logger *log.Logger) *Publisher {
	return &Publisher{
		outputPath:  outputPath,
		summaryPath: summaryPath,
		cmdOut:      cmdOut,
		logger:      logger,
	}
}

// InActions reports whether the process runs inside a GitHub Actions job.
func InActions() bool {
	return os.Getenv(EnvActions) == "true"
}

// SetOutput publishes a step output under the given name using the
// heredoc form of the $GITHUB_OUTPUT protocol, which is safe for values
// containing newlines. Outside Actions the value is printed to stdout so
// local runs still produce the matrix.
func (p *Publisher) SetOutput(name, value string) {
	if p.outputPath == "" {
		p.logger.Debug("no output file, printing to stdout", "output", name)
		fmt.Fprintln(p.cmdOut, value)
		return
	}

	delimiter, err := randomDelimiter()
	if err != nil {
		p.logger.Warn("failed to generate output delimiter", "err", err)
		return
	}
	body := fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	if err := appendFile(p.outputPath, body); err != nil {
		p.logger.Warn("failed to write step output", "output", name, "err", err)
	}
}

// AppendSummary appends Markdown to the job's step summary. Outside Actions
// the report is skipped.
func (p *Publisher) AppendSummary(md string) {
	if p.summaryPath == "" {
		p.logger.Debug("no step summary file, skipping report")
		return
	}
	if !strings.HasSuffix(md, "\n") {
		md += "\n"
	}
	if err := appendFile(p.summaryPath, md); err != nil {
		p.logger.Warn("failed to write step summary", "err", err)
	}
}

// Failf emits the ::error:: workflow command, which marks the run failed in
// the Actions UI with the given message.
func (p *Publisher) Failf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.cmdOut, "::error::%s\n", escapeCommandData(msg))
}

// escapeCommandData encodes the characters the workflow command grammar
// reserves in the data segment.
func escapeCommandData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// randomDelimiter returns a heredoc delimiter that cannot be guessed by the
// published value, per the Actions hardening guidance.
func randomDelimiter() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "ghadelimiter_" + hex.EncodeToString(buf), nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
