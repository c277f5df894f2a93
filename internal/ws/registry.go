package ws

import (
	"encoding/json"
	"sync"
)

// Registry tracks the set of live sessions and provides the delivery
// primitives. Safe for concurrent register/deregister/broadcast.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Register(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

func (r *Registry) Deregister(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s.ID())
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SendTo delivers v to a single session. Send failures are swallowed; a dead
// connection is cleaned up by its own read loop.
func (r *Registry) SendTo(s *Session, v any) {
	_ = s.Send(v)
}

// BroadcastExcept delivers v to every registered session except the excluded
// one (nil excludes nobody). The message is marshaled once; the recipient
// list is snapshotted under the read lock and sends happen outside it so one
// slow or failed recipient cannot stall the set or the registry.
func (r *Registry) BroadcastExcept(v any, except *Session) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	r.mu.RLock()
	recipients := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if except != nil && s.ID() == except.ID() {
			continue
		}
		recipients = append(recipients, s)
	}
	r.mu.RUnlock()

	for _, s := range recipients {
		_ = s.sendRaw(data)
	}
}
