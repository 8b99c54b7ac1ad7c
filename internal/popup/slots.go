package popup

import (
	"context"
	"sync"
	"time"
)

// SlotStore keeps one popup slot per visitor session.
type SlotStore interface {
	RequestShow(ctx context.Context, sessionID string, id ID) (bool, error)
	Dismiss(ctx context.Context, sessionID string, id ID) error
	Active(ctx context.Context, sessionID string) (ID, bool, error)
}

type registryEntry struct {
	manager  *Manager
	lastSeen time.Time
}

// Registry is an in-process SlotStore holding one Manager per session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	now      func() time.Time
}

func NewRegistry() *Registry {
	return NewRegistryWithClock(time.Now)
}

func NewRegistryWithClock(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*registryEntry),
		now:      now,
	}
}

// Manager returns the session's manager, creating it on first use.
func (r *Registry) Manager(sessionID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		entry = &registryEntry{manager: NewManager()}
		r.sessions[sessionID] = entry
	}
	entry.lastSeen = r.now()
	return entry.manager
}

// existing returns the session's manager without creating one. touch
// refreshes its idle clock.
func (r *Registry) existing(sessionID string, touch bool) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if touch {
		entry.lastSeen = r.now()
	}
	return entry.manager, true
}

func (r *Registry) RequestShow(_ context.Context, sessionID string, id ID) (bool, error) {
	return r.Manager(sessionID).RequestShow(id), nil
}

// Dismiss on a session with no slot state is a no-op.
func (r *Registry) Dismiss(_ context.Context, sessionID string, id ID) error {
	if m, ok := r.existing(sessionID, true); ok {
		m.Dismiss(id)
	}
	return nil
}

// Active reads the slot without creating or refreshing session state.
func (r *Registry) Active(_ context.Context, sessionID string) (ID, bool, error) {
	m, ok := r.existing(sessionID, false)
	if !ok {
		return "", false, nil
	}
	active, held := m.Active()
	return active, held, nil
}

// Sweep drops sessions idle for longer than ttl and reports how many were removed.
func (r *Registry) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for sessionID, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, sessionID)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
