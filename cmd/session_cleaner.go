package main

import (
	"context"
	"log"
	"time"

	"motorsonline/internal/repositories"
)

const sessionCleanerTimeout = 1 * time.Minute

// startSessionCleaner purges expired refresh sessions once a day so the
// sessions table does not grow without bound.
func startSessionCleaner(ctx context.Context, repo *repositories.UserRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, sessionCleanerTimeout)
			deleted, err := repo.DeleteExpiredSessions(runCtx)
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("session cleaner: failed to delete expired sessions: %v", err)
				}
			} else if deleted > 0 && infoLog != nil {
				infoLog.Printf("session cleaner: deleted %d expired sessions", deleted)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
