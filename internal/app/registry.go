package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rindev0901/video-group-meeting/internal/core"
	"github.com/rindev0901/video-group-meeting/internal/domain"
)

// Registry is the process-wide map from connection identity to presence
// record. It holds no room knowledge; membership lives in the transport.
//
// The relay mutates a record only in response to an event from the owning
// connection, and the transport serializes event handling, so the lock
// only guards against readers outside the event loop (HTTP handlers,
// metrics scrapes).
type Registry struct {
	mu        sync.RWMutex
	presences map[core.ConnID]*domain.Presence
}

func NewRegistry() *Registry {
	return &Registry{presences: make(map[core.ConnID]*domain.Presence)}
}

func (r *Registry) Put(id core.ConnID, p *domain.Presence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presences[id] = p
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("name", p.UserName).Msg("presence registered")
}

// Get returns a copy; callers never share the stored record.
func (r *Registry) Get(id core.ConnID) (domain.Presence, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presences[id]
	if !ok {
		return domain.Presence{}, false
	}
	return *p, true
}

// Update applies mutate to the stored record, if any. Reports whether a
// record existed.
func (r *Registry) Update(id core.ConnID, mutate func(*domain.Presence)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.presences[id]
	if !ok {
		return false
	}
	mutate(p)
	return true
}

func (r *Registry) Delete(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.presences[id]; !ok {
		return
	}
	delete(r.presences, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("presence removed")
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.presences)
}
