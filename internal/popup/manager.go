package popup

import "sync"

// ID identifies a popup producer competing for the slot.
type ID string

// Manager arbitrates the single popup slot of one visitor session.
// A Manager is created per session and must not be shared across sessions.
type Manager struct {
	mu     sync.Mutex
	active ID
	held   bool
}

func NewManager() *Manager {
	return &Manager{}
}

// RequestShow grants the slot to id when it is free. A request from the
// current holder keeps the slot and reports true.
func (m *Manager) RequestShow(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.held {
		m.active = id
		m.held = true
		return true
	}
	return m.active == id
}

// Dismiss frees the slot only when id holds it.
func (m *Manager) Dismiss(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held && m.active == id {
		m.active = ""
		m.held = false
	}
}

func (m *Manager) Active() (ID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.held
}
