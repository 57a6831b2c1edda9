// Package identity owns sign-in, sign-out, and access-token acquisition
// against Microsoft Entra ID. It wraps the MSAL public client and turns
// every acquisition failure into a classified, actionable TokenResult;
// nothing in this package panics or returns raw MSAL errors across the
// package boundary.
package identity

import (
	"sync"
	"time"
)

// nowFunc is stubbed in tests.
var nowFunc = time.Now

// Session describes the currently signed-in principal. The zero value is
// the unauthenticated sentinel. A Session is replaced wholesale on every
// authentication event; callers always receive a copy and never a shared
// reference.
type Session struct {
	Authenticated bool
	PrincipalName string
	DisplayName   string
	HomeTenantID  string
	LastAuthTime  time.Time
	TokenExpiry   time.Time
}

// sessionStore is the single-writer holder for the live session. Only the
// Authenticator mutates it; everyone else reads copies through Session().
type sessionStore struct {
	mu      sync.RWMutex
	current Session

	subMu sync.Mutex
	subs  []chan Session
}

func (s *sessionStore) get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// set replaces the session and notifies subscribers. Subscriber channels
// are buffered and sends never block; a slow subscriber misses updates
// rather than stalling the publisher.
func (s *sessionStore) set(sess Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- sess:
		default:
		}
	}
}

// reset replaces the session with the unauthenticated sentinel.
func (s *sessionStore) reset() {
	s.set(Session{})
}

// subscribe registers a listener for session changes.
func (s *sessionStore) subscribe() <-chan Session {
	ch := make(chan Session, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}
