package workflow

import (
	"context"
	"fmt"
	"sort"
)

// GuardFunc evaluates whether a transition should be allowed
type GuardFunc func(ctx context.Context) bool

// StateMachine tracks a current state and validates transitions against a
// fixed configuration.
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, transitioning to the new state
	// if allowed and its guard (when present) passes
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns the triggers that can fire in the current state
	PermittedTriggers() []Trigger
}

// Builder assembles a transition table before any machine is built.
type Builder struct {
	transitions map[State]map[Trigger]transition
}

type transition struct {
	toState State
	guard   GuardFunc
}

// NewBuilder creates an empty state machine builder
func NewBuilder() *Builder {
	return &Builder{transitions: make(map[State]map[Trigger]transition)}
}

// Permit allows a trigger to transition from one state to another
func (b *Builder) Permit(from State, trigger Trigger, to State) *Builder {
	return b.PermitIf(from, trigger, to, nil)
}

// PermitIf allows a trigger to transition between states only when the guard
// condition passes at fire time
func (b *Builder) PermitIf(from State, trigger Trigger, to State, guard GuardFunc) *Builder {
	if !from.IsValid() {
		panic(fmt.Sprintf("invalid source state: %s", from))
	}
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", to))
	}
	row, ok := b.transitions[from]
	if !ok {
		row = make(map[Trigger]transition)
		b.transitions[from] = row
	}
	row[trigger] = transition{toState: to, guard: guard}
	return b
}

// Build creates a machine positioned at the given initial state. The
// transition table is copied so later builder mutations cannot leak in.
func (b *Builder) Build(initial State) StateMachine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initial))
	}
	table := make(map[State]map[Trigger]transition, len(b.transitions))
	for from, row := range b.transitions {
		rowCopy := make(map[Trigger]transition, len(row))
		for trg, t := range row {
			rowCopy[trg] = t
		}
		table[from] = rowCopy
	}
	return &stateMachine{currentState: initial, transitions: table}
}

type stateMachine struct {
	currentState State
	transitions  map[State]map[Trigger]transition
}

func (m *stateMachine) State() State {
	return m.currentState
}

func (m *stateMachine) CanFire(trigger Trigger) bool {
	row, ok := m.transitions[m.currentState]
	if !ok {
		return false
	}
	_, ok = row[trigger]
	return ok
}

func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	row, ok := m.transitions[m.currentState]
	if !ok {
		return fmt.Errorf("%w: trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}
	t, ok := row[trigger]
	if !ok {
		return fmt.Errorf("%w: trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}
	if t.guard != nil && !t.guard(ctx) {
		return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.currentState)
	}
	m.currentState = t.toState
	return nil
}

func (m *stateMachine) PermittedTriggers() []Trigger {
	row := m.transitions[m.currentState]
	triggers := make([]Trigger, 0, len(row))
	for trg := range row {
		triggers = append(triggers, trg)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
