// Package engine orchestrates the ordered repair steps under a uniform
// severity policy: a fatal step stops the run, an advisory step is logged
// and the run continues.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bitpy2023/netfix/internal/store"
)

// Severity classifies a step outcome.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityAdvisory Severity = "advisory"
	SeverityFatal    Severity = "fatal"
)

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Name     string
	Severity Severity
	Message  string
	Err      error
}

// Step is a single named pipeline stage.
type Step struct {
	Name string
	Run  func(ctx context.Context) StepResult
}

// CmdRunner executes an external command, blocking until it exits.
type CmdRunner func(ctx context.Context, name string, args ...string) error

// Pipeline runs ordered steps, recording each outcome in the run-history
// store when one is available. Store failures never abort a fix: repairing
// the host matters more than recording it.
type Pipeline struct {
	mode    Mode
	steps   []Step
	store   *store.Store
	logger  *slog.Logger
	observe func(StepResult)
}

// NewPipeline creates a pipeline. store and observe may be nil.
func NewPipeline(mode Mode, steps []Step, st *store.Store, logger *slog.Logger, observe func(StepResult)) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		mode:    mode,
		steps:   steps,
		store:   st,
		logger:  logger,
		observe: observe,
	}
}

// Run executes the steps in order and returns the first fatal error, or
// nil when every step finished with an OK or advisory result.
func (p *Pipeline) Run(ctx context.Context) error {
	run := p.beginRun()

	for _, step := range p.steps {
		res := step.Run(ctx)
		res.Name = step.Name
		p.record(run, res)

		switch res.Severity {
		case SeverityFatal:
			p.logger.Error("step failed", "step", res.Name, "error", res.Err)
			p.finishRun(run, "failed", fmt.Sprintf("%s: %v", res.Name, res.Err))
			return fmt.Errorf("%s: %w", res.Name, res.Err)
		case SeverityAdvisory:
			p.logger.Warn("step degraded, continuing", "step", res.Name, "error", res.Err)
		default:
			p.logger.Info("step completed", "step", res.Name, "detail", res.Message)
		}
	}

	p.finishRun(run, "success", "")
	return nil
}

func (p *Pipeline) beginRun() *store.FixRun {
	if p.store == nil {
		return nil
	}
	run := &store.FixRun{
		Mode:      string(p.mode),
		StartTime: time.Now(),
		Status:    "running",
	}
	if err := p.store.CreateFixRun(run); err != nil {
		p.logger.Warn("could not record fix run", "error", err)
		return nil
	}
	return run
}

func (p *Pipeline) record(run *store.FixRun, res StepResult) {
	if p.observe != nil {
		p.observe(res)
	}
	if run == nil {
		return
	}

	msg := res.Message
	if res.Err != nil {
		msg = res.Err.Error()
	}
	rec := &store.StepResult{
		RunID:    run.ID,
		Step:     res.Name,
		Severity: string(res.Severity),
		Message:  msg,
	}
	if err := p.store.AddStepResult(rec); err != nil {
		p.logger.Warn("could not record step result", "step", res.Name, "error", err)
	}
}

func (p *Pipeline) finishRun(run *store.FixRun, status, errorMessage string) {
	if run == nil {
		return
	}
	if err := p.store.FinishFixRun(run.ID, status, errorMessage, time.Now()); err != nil {
		p.logger.Warn("could not finish fix run", "error", err)
	}
}

func okResult(msg string) StepResult {
	return StepResult{Severity: SeverityOK, Message: msg}
}

func advisoryResult(err error) StepResult {
	return StepResult{Severity: SeverityAdvisory, Err: err}
}

func fatalResult(err error) StepResult {
	return StepResult{Severity: SeverityFatal, Err: err}
}
