package manager

import "fmt"

// State is the lifecycle of one board
type State int

const (
	Uninitialized State = iota
	Active
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// StateManager tracks the board state machine and the per-session counters.
type StateManager struct {
	state       State
	ticks       int
	applesEaten int
}

func NewStateManager() *StateManager {
	return &StateManager{state: Uninitialized}
}

func (sm *StateManager) State() State {
	return sm.state
}

// Start moves the board to Active and resets the counters.
func (sm *StateManager) Start() {
	sm.state = Active
	sm.ticks = 0
	sm.applesEaten = 0
}

// Finish moves an active board to Won or Lost. Anything else is ignored.
func (sm *StateManager) Finish(to State) bool {
	if sm.state != Active || !to.Terminal() {
		return false
	}
	sm.state = to
	return true
}

func (sm *StateManager) RecordTick() {
	sm.ticks++
}

func (sm *StateManager) RecordApple() {
	sm.applesEaten++
}

func (sm *StateManager) Ticks() int {
	return sm.ticks
}

func (sm *StateManager) ApplesEaten() int {
	return sm.applesEaten
}
