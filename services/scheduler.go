// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"poker-league-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleScheduler moves tournaments along their calendar:
// upcoming ones activate once their start time passes, active ones with
// an end time finish once it passes. Game dates are never touched here —
// starting and completing a night stays a manual staff call.
func (s *TournamentService) StartLifecycleScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			ctx := context.Background()
			now := time.Now()

			upcoming, err := s.Store.ListTournamentsByStatus(ctx, models.TournamentStatusUpcoming)
			if err != nil {
				log.Printf("[Scheduler] DB error listing upcoming tournaments: %v", err)
				return
			}
			for _, t := range upcoming {
				if t.StartTime.After(now) {
					continue
				}
				if err := s.Store.UpdateTournamentStatus(ctx, t.ID, models.TournamentStatusActive); err != nil {
					log.Printf("[Scheduler] Failed to activate tournament %d: %v", t.Number, err)
				} else {
					log.Printf("[Scheduler] Activated tournament %d (%s)", t.Number, t.Name)
				}
			}

			active, err := s.Store.ListTournamentsByStatus(ctx, models.TournamentStatusActive)
			if err != nil {
				log.Printf("[Scheduler] DB error listing active tournaments: %v", err)
				return
			}
			for _, t := range active {
				if t.EndTime.IsZero() || t.EndTime.After(now) {
					continue
				}
				if err := s.Store.UpdateTournamentStatus(ctx, t.ID, models.TournamentStatusFinished); err != nil {
					log.Printf("[Scheduler] Failed to finish tournament %d: %v", t.Number, err)
				} else {
					log.Printf("[Scheduler] Finished tournament %d (%s)", t.Number, t.Name)
				}
			}
		}),
	)
}
