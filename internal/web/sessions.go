package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/JonMunkholm/basefigures/internal/config"
	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/google/uuid"
)

// sessionStore keeps one TableState per browser, keyed by a cookie.
// Idle sessions expire after the configured TTL.
type sessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*session
	cfg       config.SessionConfig
	lastSweep time.Time
	now       func() time.Time
}

type session struct {
	table    *core.TableState
	lastSeen time.Time
}

func newSessionStore(cfg config.SessionConfig) *sessionStore {
	return &sessionStore{
		sessions:  make(map[string]*session),
		cfg:       cfg,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// table returns the caller's table, starting a new session (and setting its
// cookie) when the request carries none or an expired one.
func (s *sessionStore) table(w http.ResponseWriter, r *http.Request) *core.TableState {
	var id string
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		id = c.Value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if sess, ok := s.sessions[id]; ok && now.Sub(sess.lastSeen) <= s.cfg.TTL {
		sess.lastSeen = now
		return sess.table
	}

	delete(s.sessions, id)
	id = uuid.NewString()
	sess := &session{table: core.NewTableState(), lastSeen: now}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess.table
}

// existing returns the caller's table without starting a session. A request
// with no live session gets an empty, unstored table, so read-only callers
// such as API clients without a cookie leave nothing behind.
func (s *sessionStore) existing(r *http.Request) *core.TableState {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil {
		return core.NewTableState()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[c.Value]; ok && now.Sub(sess.lastSeen) <= s.cfg.TTL {
		sess.lastSeen = now
		return sess.table
	}
	return core.NewTableState()
}

// sweep drops expired sessions at most once per quarter TTL. Caller holds the lock.
func (s *sessionStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.cfg.TTL/4 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.cfg.TTL {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

// count returns the number of stored sessions.
func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
