package mcp

import (
	"context"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
	toolserver "github.com/mutablelogic/go-toolserver"
)

///////////////////////////////////////////////////////////////////////
// TYPES

// session is one open event stream. Responses to messages posted for the
// session are queued on ch until the stream writes them.
type session struct {
	id   string
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

type sessions struct {
	sync.RWMutex
	m map[string]*session
}

///////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	sessionQueueSize = 16
)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newSessions() *sessions {
	return &sessions{m: make(map[string]*session)}
}

// create registers a new session with a random identifier
func (s *sessions) create() *session {
	self := &session{
		id:   uuid.NewString(),
		ch:   make(chan []byte, sessionQueueSize),
		done: make(chan struct{}),
	}

	s.Lock()
	defer s.Unlock()
	s.m[self.id] = self
	return self
}

// remove closes and unregisters a session
func (s *sessions) remove(v *session) {
	s.Lock()
	delete(s.m, v.id)
	s.Unlock()
	v.close()
}

func (s *sessions) closeAll() {
	s.Lock()
	defer s.Unlock()
	for id, v := range s.m {
		v.close()
		delete(s.m, id)
	}
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// get returns a session by identifier, or nil
func (s *sessions) get(id string) *session {
	s.RLock()
	defer s.RUnlock()
	return s.m[id]
}

func (s *sessions) len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.m)
}

// send queues a message for the stream, blocking until there is room,
// the session is closed or the context is done
func (session *session) send(ctx context.Context, data []byte) error {
	select {
	case <-session.done:
		return toolserver.ErrNotFound.Withf("session %s closed", session.id)
	default:
	}
	select {
	case session.ch <- data:
		return nil
	case <-session.done:
		return toolserver.ErrNotFound.Withf("session %s closed", session.id)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (session *session) close() {
	session.once.Do(func() {
		close(session.done)
	})
}
