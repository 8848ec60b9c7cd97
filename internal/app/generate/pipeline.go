// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/skyhook-io/create-deployment-matrix/internal/config"
	"github.com/skyhook-io/create-deployment-matrix/internal/github"
	"github.com/skyhook-io/create-deployment-matrix/internal/issue"
	"github.com/skyhook-io/create-deployment-matrix/internal/matrix"
	"github.com/skyhook-io/create-deployment-matrix/internal/runtime"
)

// OutputKeyMatrix is the step output name the matrix is published under.
// Downstream jobs consume it as steps.<id>.outputs.matrix.
const OutputKeyMatrix = "matrix"

// State is a phase of the run lifecycle. A run moves strictly forward
// through the states; a failure in any phase jumps straight to reporting.
type State string

const (
	// StateValidating checks the resolved configuration.
	StateValidating State = "validating"
	// StateInvoking runs the discovery tool subprocess.
	StateInvoking State = "invoking"
	// StateNormalizing decodes the tool's stdout into the matrix.
	StateNormalizing State = "normalizing"
	// StateReporting publishes the outcome. Always reached, exactly once.
	StateReporting State = "reporting"
)

// Pipeline drives one matrix-generation run. Construct with New; a
// Pipeline is single-use.
type Pipeline struct {
	cfg    *config.Config
	pub    *github.Publisher
	logger *log.Logger

	// rt overrides runtime selection when non-nil. Tests inject stubs here;
	// production runs leave it nil and select by cfg.Runtime after
	// validation.
	rt runtime.Runtime

	state State
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRuntime pins the runtime instead of selecting one from the
// configuration.
func WithRuntime(rt runtime.Runtime) Option {
	return func(p *Pipeline) { p.rt = rt }
}

// New builds a Pipeline over the resolved configuration.
func New(cfg *config.Config, pub *github.Publisher, logger *log.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		pub:    pub,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline to its terminal state. The outcome, success or
// failure, is published exactly once before Run returns; the returned error
// is the run's failure and is reported solely so the caller can map it to
// an exit status. It must not be published again.
func (p *Pipeline) Run(ctx context.Context) error {
	m, err := p.execute(ctx)
	p.report(m, err)
	return err
}

// execute carries the run from validation through normalization. The
// subprocess is launched at most once, and not at all when validation
// fails.
func (p *Pipeline) execute(ctx context.Context) (*matrix.Matrix, error) {
	p.transition(StateValidating)
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	p.transition(StateInvoking)
	rt := p.rt
	if rt == nil {
		var err error
		rt, err = runtime.Select(string(p.cfg.Runtime))
		if err != nil {
			// Validate already vetted the mode, so this is unreachable in
			// practice; surface it rather than panic.
			return nil, err
		}
	}
	if !rt.Available() {
		return nil, issue.NewErrorContext().
			WithOperation("locating a shell for the " + rt.Name() + " runtime").
			WithSuggestion("Install a POSIX shell, or switch the runtime to 'virtual'.").
			Wrap(issue.ErrShellNotFound).
			BuildError()
	}

	argv := matrix.Command(p.cfg)
	// The command line never carries the token, so it is safe to log.
	p.logger.Debug("invoking discovery tool",
		"runtime", rt.Name(),
		"dir", p.cfg.RepoPath,
		"command", argv.String())

	res, err := runtime.Invoke(rt, &runtime.Invocation{
		Context: ctx,
		Argv:    argv,
		Dir:     p.cfg.RepoPath,
		ExtraEnv: map[string]string{
			"GITHUB_TOKEN": p.cfg.GithubToken,
		},
		Timeout: p.cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if stderr := res.ErrOutput; stderr != "" {
		p.logger.Debug("discovery tool wrote to stderr", "stderr", stderr)
	}

	p.transition(StateNormalizing)
	return matrix.Normalize(res.Output)
}

// report publishes the run outcome: the matrix output on success, an error
// annotation on failure, and one step-summary report either way.
func (p *Pipeline) report(m *matrix.Matrix, err error) {
	p.transition(StateReporting)

	summary := &github.RunSummary{
		Tag:     p.cfg.Tag,
		Branch:  p.cfg.Branch,
		Overlay: p.cfg.Overlay,
		Err:     err,
	}

	if err != nil {
		p.pub.Failf("%s", err.Error())
	} else {
		p.pub.SetOutput(OutputKeyMatrix, m.JSON)
		summary.MatrixPretty = m.Pretty()
	}

	p.pub.AppendSummary(summary.Markdown())
}

func (p *Pipeline) transition(next State) {
	p.state = next
	p.logger.Debug("pipeline state", "state", string(next))
}
