// Package workflow sequences the commit, push, PR, review, and merge steps
// of shipping a change.
//
// Each step is idempotent: re-running the sequence after a failure resumes
// where it left off rather than repeating completed work. The sequencer
// halts on the first failed or blocked step and reports every step's status.
package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/droverhq/drover/internal/clock"
	"github.com/droverhq/drover/internal/ctxutil"
	droverrors "github.com/droverhq/drover/internal/errors"
)

// StepStatus is the outcome of a single step.
type StepStatus string

// Step outcomes.
const (
	// StatusOK means the step performed its work.
	StatusOK StepStatus = "ok"
	// StatusSkipped means the step's work was already done.
	StatusSkipped StepStatus = "skipped"
	// StatusBlocked means the step refused to proceed pending human review.
	StatusBlocked StepStatus = "blocked"
	// StatusFailed means the step errored.
	StatusFailed StepStatus = "failed"
)

// StepResult records one step's outcome.
type StepResult struct {
	// Name is the step name.
	Name string `json:"name"`
	// Status is the outcome.
	Status StepStatus `json:"status"`
	// Detail is a short human-readable note.
	Detail string `json:"detail,omitempty"`
	// Duration is how long the step ran.
	Duration time.Duration `json:"duration"`
	// Err holds the failure, nil otherwise.
	Err error `json:"-"`
}

// Step is one unit of the shipping sequence.
type Step interface {
	// Name identifies the step in reports and logs.
	Name() string

	// Run executes the step against the shared state. A step that finds
	// its work already done returns StatusSkipped.
	Run(ctx context.Context, state *State) (StepResult, error)
}

// State is the mutable context threaded through the steps of one run.
type State struct {
	// Branch is the branch being shipped.
	Branch string
	// CommitMessage is the message for the commit step.
	CommitMessage string
	// Remote is the push target.
	Remote string
	// BaseBranch is the PR base.
	BaseBranch string
	// PRNumber is set once a PR exists.
	PRNumber int
	// PRURL is set once a PR exists.
	PRURL string
	// Findings holds review findings for reporting.
	FindingCount int
}

// RunReport is the outcome of a full sequence run.
type RunReport struct {
	// RunID uniquely identifies this run in logs and reports.
	RunID string `json:"run_id"`
	// StartedAt is when the run began, UTC.
	StartedAt time.Time `json:"started_at"`
	// Steps are the per-step results in execution order. Steps after a
	// halt are absent, not marked.
	Steps []StepResult `json:"steps"`
	// Halted is true when a step failed or blocked the run.
	Halted bool `json:"halted"`
	// PRNumber is the PR involved, zero if none was reached.
	PRNumber int `json:"pr_number,omitempty"`
	// PRURL is the PR URL, empty if none was reached.
	PRURL string `json:"pr_url,omitempty"`
}

// Sequencer runs an ordered list of steps.
type Sequencer struct {
	steps  []Step
	clock  clock.Clock
	logger zerolog.Logger
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithClock sets the clock used for run timestamps.
func WithClock(c clock.Clock) SequencerOption {
	return func(s *Sequencer) {
		s.clock = c
	}
}

// NewSequencer creates a Sequencer over the given steps.
func NewSequencer(logger zerolog.Logger, steps []Step, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		steps:  steps,
		clock:  clock.RealClock{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the steps in order against the given state, halting at the
// first failed or blocked step. The report always describes every step that
// ran; the returned error is the halting step's error, if any.
func (s *Sequencer) Run(ctx context.Context, state *State) (*RunReport, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: s.clock.Now().UTC(),
	}
	logger := s.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().Str("branch", state.Branch).Msg("starting workflow run")

	var haltErr error
	for _, step := range s.steps {
		if err := ctxutil.Canceled(ctx); err != nil {
			report.Halted = true
			haltErr = droverrors.Wrap(err, "workflow canceled")
			break
		}

		start := s.clock.Now()
		result, err := step.Run(ctx, state)
		result.Name = step.Name()
		result.Duration = s.clock.Now().Sub(start)
		result.Err = err

		if err != nil && result.Status == "" {
			result.Status = StatusFailed
		}
		report.Steps = append(report.Steps, result)

		logger.Info().
			Str("step", result.Name).
			Str("status", string(result.Status)).
			Dur("duration", result.Duration).
			Msg("step finished")

		if result.Status == StatusFailed || result.Status == StatusBlocked {
			report.Halted = true
			haltErr = err
			if haltErr == nil && result.Status == StatusBlocked {
				haltErr = droverrors.Wrap(droverrors.ErrStepBlocked, result.Name)
			}
			break
		}
	}

	report.PRNumber = state.PRNumber
	report.PRURL = state.PRURL
	return report, haltErr
}
