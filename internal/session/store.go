package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

// Session is one visitor's server-side state, keyed by the cookie token
type Session struct {
	Token     string
	Form      *usecase.AuthForm
	CreatedAt time.Time
}

// Store keeps visitor sessions in memory until they expire
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
	onExpire func(token string)
}

// NewStore creates a store whose sessions live for ttl after creation
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go s.cleanupLoop(time.Hour)

	return s
}

// OnExpire registers fn to be called with the token of every session that
// expires or is removed. Call before serving requests.
func (s *Store) OnExpire(fn func(token string)) {
	s.onExpire = fn
}

// generateToken returns 256 random bits, hex encoded
func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Create starts a new session with a fresh sign-in form
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := generateToken()
	for _, exists := s.sessions[token]; exists; _, exists = s.sessions[token] {
		token = generateToken()
	}

	sess := &Session{
		Token:     token,
		Form:      usecase.NewAuthForm(token),
		CreatedAt: s.now(),
	}
	s.sessions[token] = sess
	return sess
}

// Get returns the live session for token
func (s *Store) Get(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}

	s.mu.RLock()
	sess, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	// Expiry counts from creation, matching the cookie's MaxAge
	if s.now().Sub(sess.CreatedAt) > s.ttl {
		s.Remove(token)
		return nil, false
	}

	return sess, true
}

// GetOrCreate returns the session for token, or a new one if it is unknown
// or expired. created reports which happened.
func (s *Store) GetOrCreate(token string) (sess *Session, created bool) {
	if sess, ok := s.Get(token); ok {
		return sess, false
	}
	return s.Create(), true
}

// Remove deletes a session
func (s *Store) Remove(token string) {
	s.mu.Lock()
	_, exists := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if exists && s.onExpire != nil {
		s.onExpire(token)
	}
}

// Count returns the number of stored sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup goroutine
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// cleanupLoop periodically removes expired sessions
func (s *Store) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup removes expired sessions
func (s *Store) cleanup() {
	s.mu.Lock()
	now := s.now()
	var expired []string
	for token, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > s.ttl {
			delete(s.sessions, token)
			expired = append(expired, token)
		}
	}
	s.mu.Unlock()

	if s.onExpire != nil {
		for _, token := range expired {
			s.onExpire(token)
		}
	}
}
