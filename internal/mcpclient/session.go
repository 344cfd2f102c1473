package mcpclient

import "sync"

// SessionState owns the session token and the request-id counter for one
// backend service. Exactly one Client holds it; nothing else mutates it.
//
// The epoch is a generation counter bumped by Reset. A handshake started
// under an older generation must not install its token (see SetTokenAt),
// which closes the race between a registry-broadcast reset and a handshake
// response already in flight.
type SessionState struct {
	mu     sync.Mutex
	token  string
	nextID int64
	epoch  uint64
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

// AllocateRequestID returns the next JSON-RPC request id. The first call of
// a session generation yields 1; ids are strictly increasing until Reset
// restarts the sequence.
func (s *SessionState) AllocateRequestID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Token returns the current session token, or "" when no session exists.
func (s *SessionState) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken unconditionally installs a session token.
func (s *SessionState) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetTokenAt installs the token only if the session is still in the given
// generation. It reports whether the token was installed; a false return
// means a Reset happened while the handshake was in flight and the stale
// token was discarded.
func (s *SessionState) SetTokenAt(token string, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.token = token
	return true
}

// ClearToken drops the session token, leaving the id counter running.
func (s *SessionState) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Epoch returns the current session generation.
func (s *SessionState) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Reset drops the token and restarts the id counter in one step, and moves
// to a new generation so in-flight handshakes from the old one cannot
// repopulate the token afterwards.
func (s *SessionState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.nextID = 0
	s.epoch++
}
