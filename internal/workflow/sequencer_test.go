package workflow

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	droverrors "github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/testutil"
)

// stubStep is a configurable Step for sequencer tests.
type stubStep struct {
	name   string
	status StepStatus
	err    error
	ran    *[]string
}

func (s *stubStep) Name() string { return s.name }

func (s *stubStep) Run(_ context.Context, _ *State) (StepResult, error) {
	*s.ran = append(*s.ran, s.name)
	return StepResult{Status: s.status}, s.err
}

func TestSequencerRunsAllStepsInOrder(t *testing.T) {
	t.Parallel()

	var ran []string
	steps := []Step{
		&stubStep{name: "one", status: StatusOK, ran: &ran},
		&stubStep{name: "two", status: StatusSkipped, ran: &ran},
		&stubStep{name: "three", status: StatusOK, ran: &ran},
	}

	seq := NewSequencer(zerolog.Nop(), steps)
	report, err := seq.Run(context.Background(), &State{Branch: "update/x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, ran)
	assert.False(t, report.Halted)
	assert.Len(t, report.Steps, 3)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, StatusSkipped, report.Steps[1].Status)
}

func TestSequencerHaltsOnFailure(t *testing.T) {
	t.Parallel()

	var ran []string
	steps := []Step{
		&stubStep{name: "one", status: StatusOK, ran: &ran},
		&stubStep{name: "two", status: StatusFailed, err: testutil.ErrMockGitFailed, ran: &ran},
		&stubStep{name: "three", status: StatusOK, ran: &ran},
	}

	seq := NewSequencer(zerolog.Nop(), steps)
	report, err := seq.Run(context.Background(), &State{})
	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrMockGitFailed)

	// The step after the failure never ran.
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.True(t, report.Halted)
	assert.Len(t, report.Steps, 2)
}

func TestSequencerHaltsOnBlocked(t *testing.T) {
	t.Parallel()

	var ran []string
	steps := []Step{
		&stubStep{name: "review", status: StatusBlocked, ran: &ran},
		&stubStep{name: "push", status: StatusOK, ran: &ran},
	}

	seq := NewSequencer(zerolog.Nop(), steps)
	report, err := seq.Run(context.Background(), &State{})
	require.Error(t, err)
	assert.ErrorIs(t, err, droverrors.ErrStepBlocked)
	assert.True(t, report.Halted)
	assert.Equal(t, []string{"review"}, ran)
}

func TestSequencerReportCarriesPRState(t *testing.T) {
	t.Parallel()

	var ran []string
	prStep := &stubStepWithPR{stubStep{name: "create-pr", status: StatusOK, ran: &ran}}

	seq := NewSequencer(zerolog.Nop(), []Step{prStep})
	report, err := seq.Run(context.Background(), &State{})
	require.NoError(t, err)
	assert.Equal(t, 42, report.PRNumber)
	assert.Equal(t, "https://github.com/x/y/pull/42", report.PRURL)
}

// stubStepWithPR sets PR state to verify it is copied into the report.
type stubStepWithPR struct {
	stubStep
}

func (s *stubStepWithPR) Run(ctx context.Context, state *State) (StepResult, error) {
	state.PRNumber = 42
	state.PRURL = "https://github.com/x/y/pull/42"
	return s.stubStep.Run(ctx, state)
}

func TestSequencerCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran []string
	seq := NewSequencer(zerolog.Nop(), []Step{
		&stubStep{name: "one", status: StatusOK, ran: &ran},
	})
	_, err := seq.Run(ctx, &State{})
	require.Error(t, err)
	assert.Empty(t, ran)
}

func TestSequencerUniqueRunIDs(t *testing.T) {
	t.Parallel()

	seq := NewSequencer(zerolog.Nop(), nil)
	first, err := seq.Run(context.Background(), &State{})
	require.NoError(t, err)
	second, err := seq.Run(context.Background(), &State{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
}
