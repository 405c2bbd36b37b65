package bot

import "sync"

// SessionState is the per-user conversational state. It lives only for the
// lifetime of the process and is never persisted.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingBroadcastText
)

// SessionStore keys conversational state by user id.
type SessionStore struct {
	mu     sync.Mutex
	states map[int64]SessionState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{states: make(map[int64]SessionState)}
}

func (s *SessionStore) Get(userID int64) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

func (s *SessionStore) Set(userID int64, state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == StateIdle {
		delete(s.states, userID)
		return
	}
	s.states[userID] = state
}
