package service

import (
	"context"
	"log"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/socket"
	"github.com/encikiz/planr-backend/internal/types"
	"github.com/shopspring/decimal"
)

// ProgressService recomputes the derived progress/status aggregates on
// milestones and projects from their task sets. Aggregates are always fully
// re-derivable, so a failed or stale write self-corrects on the next
// recomputation for the same parent.
type ProgressService interface {
	RecalculateProjectProgress(ctx context.Context, projectID string) error
	RecalculateMilestoneProgress(ctx context.Context, milestoneID string) error

	// ReconcileAll re-derives every project and milestone aggregate.
	// Used by the scheduled sweep.
	ReconcileAll(ctx context.Context) error
}

type progressService struct {
	taskRepo      repository.TaskRepository
	projectRepo   repository.ProjectRepository
	milestoneRepo repository.MilestoneRepository
	broadcaster   *socket.Broadcaster
}

func NewProgressService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	milestoneRepo repository.MilestoneRepository,
	broadcaster *socket.Broadcaster,
) ProgressService {
	return &progressService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		milestoneRepo: milestoneRepo,
		broadcaster:   broadcaster,
	}
}

// averageProgress returns the mean task progress rounded half-up.
func averageProgress(tasks []*repository.Task) int {
	var sum int64
	for _, t := range tasks {
		sum += int64(t.Progress)
	}
	avg := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(tasks)))).
		Round(0)
	return int(avg.IntPart())
}

// statusFromProgress derives a status from an aggregate progress value.
func statusFromProgress(progress int) string {
	switch {
	case progress == 100:
		return types.StatusCompleted
	case progress > 0:
		return types.StatusInProgress
	default:
		return types.StatusNotStarted
	}
}

// RecalculateMilestoneProgress re-derives a milestone's progress and status
// from the tasks attached to it. An empty task set is a no-op: the last
// written aggregate is left in place.
func (s *progressService) RecalculateMilestoneProgress(ctx context.Context, milestoneID string) error {
	tasks, err := s.taskRepo.FindByMilestoneID(ctx, milestoneID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	progress := averageProgress(tasks)
	status := statusFromProgress(progress)

	if err := s.milestoneRepo.UpdateProgressAndStatus(ctx, milestoneID, progress, status); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMilestoneProgress(tasks[0].ProjectID, milestoneID, progress, status)
	}
	return nil
}

// RecalculateProjectProgress re-derives a project's progress from all of its
// tasks, then applies the status rules: every task completed forces
// completed/100, any task in progress forces in-progress, anything else
// leaves the stored status alone.
func (s *progressService) RecalculateProjectProgress(ctx context.Context, projectID string) error {
	tasks, err := s.taskRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		if err := s.projectRepo.UpdateProgress(ctx, projectID, 0); err != nil {
			return err
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastProjectProgress(projectID, 0, "")
		}
		return nil
	}

	progress := averageProgress(tasks)

	allCompleted := true
	anyInProgress := false
	for _, t := range tasks {
		if t.Status != types.StatusCompleted {
			allCompleted = false
		}
		if t.Status == types.StatusInProgress {
			anyInProgress = true
		}
	}

	var status string
	switch {
	case allCompleted:
		progress = 100
		status = types.StatusCompleted
	case anyInProgress:
		status = types.StatusInProgress
	}

	if status != "" {
		if err := s.projectRepo.UpdateProgressAndStatus(ctx, projectID, progress, status); err != nil {
			return err
		}
	} else {
		if err := s.projectRepo.UpdateProgress(ctx, projectID, progress); err != nil {
			return err
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectProgress(projectID, progress, status)
	}
	return nil
}

// ReconcileAll sweeps every project and milestone through the same
// recalculation rules. Milestones with no tasks keep their last aggregate,
// matching the per-mutation behavior.
func (s *progressService) ReconcileAll(ctx context.Context) error {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := s.RecalculateProjectProgress(ctx, p.ID); err != nil {
			log.Printf("[Progress] reconcile project %s failed: %v", p.ID, err)
		}
	}

	milestones, err := s.milestoneRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, m := range milestones {
		if err := s.RecalculateMilestoneProgress(ctx, m.ID); err != nil {
			log.Printf("[Progress] reconcile milestone %s failed: %v", m.ID, err)
		}
	}
	return nil
}
