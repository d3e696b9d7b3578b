package flow

import "sync"

// Registry holds one machine per browser session, in process memory only.
// OTP challenges ride on the machines, so a process restart simply drops any
// pending verification back to the login screen.
type Registry struct {
	mu       sync.Mutex
	machines map[string]*Machine
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{machines: make(map[string]*Machine)}
}

// Get returns the machine for a session, creating one if needed. The
// authenticated flag seeds the initial screen for new machines.
func (r *Registry) Get(sessionID string, authenticated bool) *Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.machines[sessionID]; ok {
		return m
	}
	m := New(authenticated)
	r.machines[sessionID] = m
	return m
}

// Drop removes a session's machine, typically on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, sessionID)
}
