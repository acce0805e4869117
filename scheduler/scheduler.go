package scheduler

import (
	"time"

	"github.com/ErthaLabs/ErthaExchange/controllers"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/robfig/cron/v3"
)

// DefaultStaleOrderCron runs the stale payment order sweep hourly.
const DefaultStaleOrderCron = "0 * * * *"

// Scheduler manages the background cron jobs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler with all jobs registered. staleOrderCron
// overrides the sweep schedule when non-empty.
func NewScheduler(staleOrderCron string) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{cron: c}
	s.registerJobs(staleOrderCron)
	return s
}

func (s *Scheduler) registerJobs(staleOrderCron string) {
	if staleOrderCron == "" {
		staleOrderCron = DefaultStaleOrderCron
	}

	// Expire gateway orders that never received a payment
	_, err := s.cron.AddFunc(staleOrderCron, controllers.ExpireStalePaymentOrders)
	if err != nil {
		utils.LogError("Failed to register stale order sweep: %v", err)
		return
	}

	utils.LogInfo("Scheduled stale order sweep with spec %q", staleOrderCron)
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	utils.LogInfo("Cron scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	utils.LogInfo("Cron scheduler stopped")
}
