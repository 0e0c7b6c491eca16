package api

import (
	"sync"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// sessionCache maps dashboard sessions to their workflow actor. One workflow
// per session; the actor itself serializes submits within a session.
type sessionCache struct {
	mu  sync.Mutex
	ids map[uuid.UUID]*actor.PID
}

func newSessionCache() *sessionCache {
	return &sessionCache{
		ids: map[uuid.UUID]*actor.PID{},
	}
}

func (s *sessionCache) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *sessionCache) add(id uuid.UUID, pid *actor.PID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = pid
}

func (s *sessionCache) get(id uuid.UUID) (*actor.PID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pid, ok := s.ids[id]
	return pid, ok
}
