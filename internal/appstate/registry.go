// internal/appstate/registry.go
package appstate

import (
	"context"
	"sync"
	"time"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry hands out one Store per session id and forgets sessions that
// have been idle longer than ttl.
type Registry struct {
	mtx      sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session's store, creating it on first use.
func (r *Registry) Get(id string) *Store {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		s = &session{store: NewStore()}
		r.sessions[id] = s
	}
	s.lastSeen = r.now()
	return s.store
}

func (r *Registry) Len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and reports how many were removed.
func (r *Registry) Sweep() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	removed := 0
	cutoff := r.now().Add(-r.ttl)
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
