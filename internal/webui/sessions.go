package webui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle browser session keeps its view.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// SessionRegistry maps browser sessions to their Controller. Nothing is
// persisted; an evicted session starts over with the initial load.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	factory  func() *Controller
	now      func() time.Time
	logger   *log.Logger
}

// NewSessionRegistry creates a registry that builds controllers with factory.
func NewSessionRegistry(ttl time.Duration, factory func() *Controller, logger *log.Logger) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[webui] ", log.LstdFlags)
	}
	return &SessionRegistry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the controller for id. Unknown or empty ids get a fresh session;
// the returned id is the one the caller should hand back to the browser.
func (r *SessionRegistry) Get(id string) (string, *Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok && id != "" {
		s.lastSeen = now
		return id, s.controller, false
	}

	id = uuid.NewString()
	s := &session{controller: r.factory(), lastSeen: now}
	r.sessions[id] = s
	return id, s.controller, true
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many were removed.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Printf("Evicted %d idle sessions", n)
			}
		}
	}
}
