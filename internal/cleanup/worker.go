// Package cleanup runs periodic removal of expired sessions.
package cleanup

import (
	"context"
	"time"

	"github.com/dtroode/authkeeper/internal/logger"
)

// SessionCleaner removes expired sessions and reports how many were deleted.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// Worker periodically deletes expired sessions from storage.
type Worker struct {
	cleaner  SessionCleaner
	interval time.Duration
	logger   *logger.Logger
}

// NewWorker creates a Worker that runs the cleaner at the given interval.
func NewWorker(cleaner SessionCleaner, interval time.Duration, l *logger.Logger) *Worker {
	return &Worker{
		cleaner:  cleaner,
		interval: interval,
		logger:   l,
	}
}

// Run performs one cleanup immediately, then repeats on every tick
// until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("session cleanup worker started", "interval", w.interval.String())

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("session cleanup worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	deleted, err := w.cleaner.CleanupExpiredSessions(ctx)
	if err != nil {
		w.logger.Error("failed to clean up expired sessions", "error", err)
		return
	}
	if deleted > 0 {
		w.logger.Info("removed expired sessions", "count", deleted)
	}
}
