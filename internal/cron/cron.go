package cron

import (
	"context"
	"log"
	"time"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron        *cron.Cron
	progressSvc service.ProgressService
	taskRepo    repository.TaskRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(progressSvc service.ProgressService, taskRepo repository.TaskRepository) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		progressSvc: progressSvc,
		taskRepo:    taskRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every hour - reconcile stored aggregates against actual tasks.
	// The write path keeps aggregates best-effort, so a failed recalculation
	// can leave stale values until this sweep catches them.
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running progress reconciliation...")
		s.reconcileProgress()
	})

	// Run every day at 9 AM - overdue task report
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running overdue task check...")
		s.checkOverdueTasks()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// reconcileProgress recomputes every project and milestone aggregate
func (s *Scheduler) reconcileProgress() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.progressSvc.ReconcileAll(ctx); err != nil {
		log.Printf("[Cron] Progress reconciliation failed: %v", err)
		return
	}
	log.Println("[Cron] Progress reconciliation complete")
}

// checkOverdueTasks logs tasks past their due date and not completed
func (s *Scheduler) checkOverdueTasks() {
	ctx := context.Background()

	tasks, err := s.taskRepo.FindOverdue(ctx)
	if err != nil {
		log.Printf("[Cron] Error finding overdue tasks: %v", err)
		return
	}

	now := time.Now()
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		daysOverdue := int(now.Sub(*task.DueDate).Hours() / 24)
		log.Printf("[Cron] Overdue task %s (%q): %d days past due", task.ID, task.Name, daysOverdue)
	}
	log.Printf("[Cron] Overdue task check complete: %d overdue", len(tasks))
}

// ManualTrigger allows manual triggering of scheduled checks (for testing)
func (s *Scheduler) ManualTrigger(checkType string) {
	switch checkType {
	case "reconcile":
		s.reconcileProgress()
	case "overdue":
		s.checkOverdueTasks()
	case "all":
		s.reconcileProgress()
		s.checkOverdueTasks()
	}
}
