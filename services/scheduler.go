package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartStaleClaimMonitor periodically reports requests stuck in
// claimed state past maxAge. There is deliberately no penalty or
// auto-release; the job only surfaces them for operators.
func (s *ExchangeService) StartStaleClaimMonitor(every, maxAge time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			cutoff := time.Now().UTC().Add(-maxAge)
			stale, err := s.Store.ClaimedBefore(cutoff)
			if err != nil {
				log.Printf("[StaleClaims] DB error: %v", err)
				return
			}
			for _, r := range stale {
				claimedBy := int64(0)
				if r.ClaimedBy != nil {
					claimedBy = *r.ClaimedBy
				}
				log.Printf("⚠️  [StaleClaims] request %d claimed by user %d since %s, still unconfirmed",
					r.ID, claimedBy, r.CreatedAt.Format(time.RFC3339))
			}
		}),
	)
}
