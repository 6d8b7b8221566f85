package session

import "sync"

// State is the free-text input a user's conversation is waiting for.
type State int

const (
	Idle State = iota
	AwaitingLocation
	AwaitingTime
	AwaitingThresholds
)

func (s State) String() string {
	switch s {
	case AwaitingLocation:
		return "awaiting_location"
	case AwaitingTime:
		return "awaiting_time"
	case AwaitingThresholds:
		return "awaiting_thresholds"
	default:
		return "idle"
	}
}

// Manager tracks per-user conversation state in memory. At most one
// expectation is outstanding per user; setting a new one replaces it.
type Manager struct {
	mu     sync.Mutex
	states map[int64]State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{states: make(map[int64]State)}
}

// Expect records the free-text input awaited from a user.
func (m *Manager) Expect(userID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == Idle {
		delete(m.states, userID)
		return
	}
	m.states[userID] = state
}

// Get returns the current state without changing it.
func (m *Manager) Get(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[userID]
}

// Take returns the pending state and resets the user to Idle in the same
// step. Handlers consume exactly one free-text message per expectation, so
// the reset happens regardless of how the handler turns out.
func (m *Manager) Take(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.states[userID]
	delete(m.states, userID)
	return state
}

// Clear resets a user to Idle.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}
