package cron

import (
	"context"
	"time"
)

// SessionSweeper drops idle session workspaces.
type SessionSweeper interface {
	Sweep(ctx context.Context) error
	TTL() time.Duration
}

type SessionJobs struct {
	sessions SessionSweeper
}

func NewSessionJobs(sessions SessionSweeper) *SessionJobs {
	return &SessionJobs{sessions: sessions}
}

// RegisterJobs sweeps at half the TTL so a workspace outlives its TTL by at
// most that much.
func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_idle_sessions", j.sessions.TTL()/2, j.sessions.Sweep)
}
