package review

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State is a review's position in the gate lifecycle.
type State string

// States are untyped string constants for statekit.StateID compatibility.
const (
	StatePending       = "pending"
	StateScoring       = "scoring"
	StateRejectedEmpty = "rejected_empty"
	StateApproved      = "approved"
	StateRejected      = "rejected"
)

const (
	eventSkip    = "skip"
	eventScore   = "score"
	eventApprove = "approve"
	eventReject  = "reject"
	eventRetry   = "retry"
)

// Terminal reports whether the review has reached a decision.
func (s State) Terminal() bool {
	switch s {
	case StateRejectedEmpty, StateApproved, StateRejected:
		return true
	default:
		return false
	}
}

// reviewRun holds the facts the guards consult. Guards read it at send time.
type reviewRun struct {
	hasInput bool
	approved bool
}

type reviewContext struct {
	Run *reviewRun
}

type stateMachine struct {
	interpreter *statekit.Interpreter[reviewContext]
}

func newStateMachine(run *reviewRun) (*stateMachine, error) {
	builder := statekit.NewMachine[reviewContext]("review-gate").
		WithInitial(statekit.StateID(StatePending)).
		WithContext(reviewContext{Run: run}).
		WithGuard("hasInput", func(ctx reviewContext, _ statekit.Event) bool {
			return ctx.Run.hasInput
		}).
		WithGuard("lacksInput", func(ctx reviewContext, _ statekit.Event) bool {
			return !ctx.Run.hasInput
		}).
		WithGuard("approved", func(ctx reviewContext, _ statekit.Event) bool {
			return ctx.Run.approved
		}).
		WithGuard("notApproved", func(ctx reviewContext, _ statekit.Event) bool {
			return !ctx.Run.approved
		})

	builder.State(StatePending).
		On(eventSkip).Target(StateRejectedEmpty).Guard("lacksInput").
		On(eventScore).Target(StateScoring).Guard("hasInput").
		Done()

	builder.State(StateScoring).
		On(eventApprove).Target(StateApproved).Guard("approved").
		On(eventReject).Target(StateRejected).Guard("notApproved").
		Done()

	// Decided reviews only leave through retry, which starts over.
	for _, terminal := range []string{StateRejectedEmpty, StateApproved, StateRejected} {
		builder.State(statekit.StateID(terminal)).
			On(eventRetry).Target(StatePending).
			Done()
	}

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build review state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &stateMachine{interpreter: interpreter}, nil
}

// transition sends event and fails if the state did not change.
func (sm *stateMachine) transition(event string) error {
	before := sm.current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if sm.current() != before {
		return nil
	}
	return fmt.Errorf("event %q is not allowed in review state %q", event, before)
}

func (sm *stateMachine) current() State {
	return State(sm.interpreter.State().Value)
}
