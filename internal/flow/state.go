package flow

import "fmt"

// State is the client-observed lifecycle state of a booking flow. The
// authoritative appointment status lives server-side; this variant only
// tracks where the operator is in the multi-step flow, replacing the
// loading/found/showing boolean soup with one value so illegal
// combinations cannot be represented.
type State string

const (
	StateDraft            State = "DRAFT"
	StateSubmitting       State = "SUBMITTING"
	StateScheduled        State = "SCHEDULED"
	StateSubmitFailed     State = "SUBMIT_FAILED"
	StateSearching        State = "SEARCHING"
	StateFound            State = "FOUND"
	StateRescheduling     State = "RESCHEDULING"
	StateRescheduleFailed State = "RESCHEDULE_FAILED"
	StateCancelling       State = "CANCELLING"
	StateCancelFailed     State = "CANCEL_FAILED"
	StateCancelled        State = "CANCELLED"
)

// transitions is the full table from the lifecycle contract. There is no
// DELETED state: cancellation is a transition, not removal.
var transitions = map[State][]State{
	StateDraft:            {StateSubmitting},
	StateSubmitting:       {StateScheduled, StateSubmitFailed},
	StateSubmitFailed:     {StateDraft},
	StateScheduled:        {StateSearching},
	StateSearching:        {StateFound, StateScheduled},
	StateFound:            {StateRescheduling, StateCancelling},
	StateRescheduling:     {StateScheduled, StateRescheduleFailed},
	StateRescheduleFailed: {StateFound},
	StateCancelling:       {StateCancelled, StateCancelFailed},
	StateCancelFailed:     {StateFound},
	StateCancelled:        {},
}

// CanTransition reports whether to is a legal successor of s.
func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Recover returns the input state a failed operation falls back to, so
// the operator can correct input and retry. Non-failure states recover
// to themselves.
func (s State) Recover() State {
	switch s {
	case StateSubmitFailed:
		return StateDraft
	case StateRescheduleFailed, StateCancelFailed:
		return StateFound
	default:
		return s
	}
}

// Terminal reports whether no further transitions exist.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Flow tracks one booking flow through its states and rejects illegal
// transitions instead of silently entering them.
type Flow struct {
	state State
}

func New(initial State) *Flow {
	return &Flow{state: initial}
}

func (f *Flow) State() State {
	return f.state
}

// Transition moves the flow to the next state or fails without changing it.
func (f *Flow) Transition(to State) error {
	if !f.state.CanTransition(to) {
		return fmt.Errorf("illegal transition %s -> %s", f.state, to)
	}
	f.state = to
	return nil
}

// Fail moves the flow into the failure state for the in-flight operation
// and returns the state the operator recovers into.
func (f *Flow) Fail() State {
	switch f.state {
	case StateSubmitting:
		f.state = StateSubmitFailed
	case StateRescheduling:
		f.state = StateRescheduleFailed
	case StateCancelling:
		f.state = StateCancelFailed
	case StateSearching:
		f.state = StateScheduled
	}
	return f.state.Recover()
}
