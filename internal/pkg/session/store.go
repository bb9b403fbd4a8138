// Package session keeps one workspace of page controllers per browser session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/google/uuid"
)

// Workspace is the set of screens owned by one session.
type Workspace struct {
	ID          string
	Departments department.DepartmentService
	Employees   employee.EmployeeService
	Attendance  attendance.AttendanceService

	lastSeen time.Time
}

// Factory builds the screens of a new workspace.
type Factory func(sessionID string) *Workspace

type Store struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	factory    Factory
	onEvict    func(sessionID string)
	now        func() time.Time
}

func NewStore(ttl time.Duration, factory Factory, onEvict func(sessionID string)) *Store {
	return &Store{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
		factory:    factory,
		onEvict:    onEvict,
		now:        time.Now,
	}
}

// NewID returns a fresh random session ID.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Get returns the workspace for sessionID, creating it when missing, and
// marks it as used.
func (s *Store) Get(sessionID string) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[sessionID]
	if !ok {
		ws = s.factory(sessionID)
		ws.ID = sessionID
		s.workspaces[sessionID] = ws
	}
	ws.lastSeen = s.now()
	return ws
}

// Transient builds a workspace for sessionID without keeping it. It serves
// requests from clients that have not yet sent the session cookie back.
func (s *Store) Transient(sessionID string) *Workspace {
	ws := s.factory(sessionID)
	ws.ID = sessionID
	return ws
}

// Sweep drops workspaces idle for longer than the TTL.
func (s *Store) Sweep(ctx context.Context) error {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var evicted []string
	for id, ws := range s.workspaces {
		if ws.lastSeen.Before(cutoff) {
			delete(s.workspaces, id)
			evicted = append(evicted, id)
		}
	}
	remaining := len(s.workspaces)
	s.mu.Unlock()

	if s.onEvict != nil {
		for _, id := range evicted {
			s.onEvict(id)
		}
	}
	if len(evicted) > 0 {
		slog.InfoContext(ctx, "Swept idle sessions", "evicted", len(evicted), "remaining", remaining)
	}
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}
