package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// sessionSweeper discards intake conversations idle longer than ttl and
// reports how many were removed. Satisfied by the intake machine.
type sessionSweeper interface {
	Sweep(ttl time.Duration) int
}

// SessionCleanupJob reaps stale intake conversations. A user who abandons
// the bot mid-dialog would otherwise pin their session slot forever.
type SessionCleanupJob struct {
	sweeper sessionSweeper
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionCleanupJob creates a job that sweeps conversations idle longer
// than ttl.
func NewSessionCleanupJob(sweeper sessionSweeper, ttl time.Duration, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		sweeper: sweeper,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_cleanup_job"),
	}
}

// Start begins the cleanup job, sweeping once a minute.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		if removed := j.sweeper.Sweep(j.ttl); removed > 0 {
			j.logger.InfoContext(context.Background(), "Stale intake sessions removed",
				"count", removed, "ttl", j.ttl.String())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
