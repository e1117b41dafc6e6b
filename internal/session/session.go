// Package session keeps one independent datatable.Manager per user session.
// A Manager is not safe for concurrent use, so every access to it goes
// through Session.Do, which serializes callers.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/pkg/log"
)

var ErrSessionNotFound = errors.New("session not found")

// Binding is everything a session needs to serve one table.
type Binding struct {
	Manager  *datatable.Manager
	Source   datatable.Source
	Executor datatable.BulkExecutor
}

// Opener builds and loads the binding of a new session for table.
type Opener func(ctx context.Context, table string) (Binding, error)

type Session struct {
	ID      string
	Table   string
	Created time.Time

	mu      sync.Mutex
	binding Binding
	now     func() time.Time

	// lastSeen holds unix nanoseconds and is read without taking mu, so a
	// long-running Do never blocks expiry checks.
	lastSeen atomic.Int64
}

// Do runs fn with exclusive access to the session's manager.
func (s *Session) Do(fn func(m *datatable.Manager) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch(s.now())
	return fn(s.binding.Manager)
}

// Source returns the dataset source the session reloads from.
func (s *Session) Source() datatable.Source {
	return s.binding.Source
}

func (s *Session) Executor() datatable.BulkExecutor {
	return s.binding.Executor
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load()).UTC()
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	open   Opener
	ttl    time.Duration
	now    func() time.Time
	logger log.LoggerService
}

type Option func(*Manager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(open Opener, ttl time.Duration, logger log.LoggerService, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		open:     open,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a new session for table.
func (m *Manager) Create(ctx context.Context, table string) (*Session, error) {
	binding, err := m.open(ctx, table)
	if err != nil {
		return nil, err
	}
	if binding.Manager == nil {
		return nil, fmt.Errorf("no table manager opened for '%s'", table)
	}

	now := m.now()
	s := &Session{
		ID:      uuid.NewString(),
		Table:   table,
		Created: now,
		binding: binding,
		now:     m.now,
	}
	s.touch(now)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("Created session '%s' for table '%s'", s.ID, table)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrSessionNotFound, id)
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: '%s'", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)

	m.logger.Debug("Deleted session '%s'", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every session idle for longer than the TTL and returns how
// many were removed. A non-positive TTL disables expiry.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.RLock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.RUnlock()

	expired := candidates[:0]
	for _, s := range candidates {
		if now.Sub(s.LastSeen()) > m.ttl {
			expired = append(expired, s)
		}
	}
	if len(expired) == 0 {
		return 0
	}

	m.mu.Lock()
	removed := 0
	for _, s := range expired {
		// The session may have been deleted or used since the first pass.
		if m.sessions[s.ID] != s || now.Sub(s.LastSeen()) <= m.ttl {
			continue
		}
		delete(m.sessions, s.ID)
		removed++
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Info("Expired %d idle session(s)", removed)
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}
