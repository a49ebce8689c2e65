package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps session IDs to their controllers. Each browser session
// gets one controller, constructed by the factory with the session ID
// so the factory can wire the session's own UI stream.
type Registry struct {
	mu       sync.Mutex
	factory  func(sessionID string) *Controller
	sessions map[string]*Controller
}

func NewRegistry(factory func(sessionID string) *Controller) *Registry {
	return &Registry{
		factory:  factory,
		sessions: map[string]*Controller{},
	}
}

func (r *Registry) Create() (string, *Controller) {
	id := uuid.NewString()
	ctrl := r.factory(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = ctrl
	return id, ctrl
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.sessions[id]
	return ctrl, ok
}

func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
