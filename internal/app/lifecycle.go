package app

import (
	"fmt"
	"sync"

	"github.com/bft-labs/drivecli/internal/domain"
	"github.com/bft-labs/drivecli/internal/ports"
)

// State represents where a session is in its request/response cycle.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateAwaitingInput
	StateSending
	StateAwaitingResponse
	StateDisplaying
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnected:
		return "Connected"
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateSending:
		return "Sending"
	case StateAwaitingResponse:
		return "AwaitingResponse"
	case StateDisplaying:
		return "Displaying"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// transitions lists the valid successors of each state.
// Every state except Closed may move to Closed.
var transitions = map[State][]State{
	StateDisconnected:     {StateConnected},
	StateConnected:        {StateAwaitingInput},
	StateAwaitingInput:    {StateAwaitingInput, StateSending},
	StateSending:          {StateAwaitingResponse},
	StateAwaitingResponse: {StateDisplaying},
	StateDisplaying:       {StateAwaitingInput},
}

// EventEmitter is called when the session state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle manages the session state machine.
type Lifecycle struct {
	mu           sync.RWMutex
	state        State
	logger       ports.Logger
	eventEmitter EventEmitter
}

// NewLifecycle creates a lifecycle in StateDisconnected.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:        StateDisconnected,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo moves to newState if the edge exists.
// Returns an error wrapping domain.ErrInvalidTransition otherwise.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state
	if !canTransition(oldState, newState) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, oldState, newState)
	}
	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Debug("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)
	return nil
}

// Closed reports whether the session has reached its terminal state.
func (l *Lifecycle) Closed() bool {
	return l.State() == StateClosed
}

func canTransition(from, to State) bool {
	if from == StateClosed {
		return false
	}
	if to == StateClosed {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
