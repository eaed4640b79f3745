// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRebuildScheduler periodically rebuilds the Redis leaderboard from
// Postgres, correcting drift from missed best-effort score pushes.
func (s *LeaderboardService) StartRebuildScheduler(interval time.Duration) {
	if s.RDB == nil {
		return
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.Rebuild(context.Background()); err != nil {
				log.Printf("[Scheduler] leaderboard rebuild failed: %v", err)
				return
			}
			log.Println("✅ Leaderboard rebuilt from DB")
		}),
	)
}
