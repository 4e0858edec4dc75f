package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from    State
		to      State
		allowed bool
	}{
		{StateDraft, StateSubmitting, true},
		{StateSubmitting, StateScheduled, true},
		{StateSubmitting, StateSubmitFailed, true},
		{StateSubmitFailed, StateDraft, true},
		{StateScheduled, StateSearching, true},
		{StateSearching, StateFound, true},
		{StateFound, StateRescheduling, true},
		{StateFound, StateCancelling, true},
		{StateRescheduling, StateScheduled, true},
		{StateCancelling, StateCancelled, true},

		// Illegal combinations the boolean-flag design allowed.
		{StateDraft, StateScheduled, false},
		{StateDraft, StateFound, false},
		{StateSubmitting, StateSubmitting, false},
		{StateSearching, StateCancelling, false},
		{StateCancelled, StateRescheduling, false},
		{StateCancelled, StateCancelling, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestFailedStatesAreRecoverable(t *testing.T) {
	assert.Equal(t, StateDraft, StateSubmitFailed.Recover())
	assert.Equal(t, StateFound, StateRescheduleFailed.Recover())
	assert.Equal(t, StateFound, StateCancelFailed.Recover())
	assert.Equal(t, StateScheduled, StateScheduled.Recover())
}

func TestCancelledIsTerminal(t *testing.T) {
	assert.True(t, StateCancelled.Terminal())
	assert.False(t, StateScheduled.Terminal())
}

func TestFlowRejectsIllegalTransition(t *testing.T) {
	f := New(StateDraft)
	require.Error(t, f.Transition(StateFound))
	assert.Equal(t, StateDraft, f.State())

	require.NoError(t, f.Transition(StateSubmitting))
	assert.Equal(t, StateSubmitting, f.State())
}

func TestFlowFail(t *testing.T) {
	f := New(StateSubmitting)
	recovered := f.Fail()
	assert.Equal(t, StateSubmitFailed, f.State())
	assert.Equal(t, StateDraft, recovered)

	f = New(StateRescheduling)
	assert.Equal(t, StateFound, f.Fail())

	f = New(StateCancelling)
	assert.Equal(t, StateFound, f.Fail())

	// A failed search returns to the search-input state.
	f = New(StateSearching)
	assert.Equal(t, StateScheduled, f.Fail())
}
