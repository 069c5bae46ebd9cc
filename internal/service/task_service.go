package service

import (
	"context"
	"log"
	"time"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/socket"
	"github.com/encikiz/planr-backend/internal/types"
)

// Sentinel accepted from callers to clear a task's milestone association.
// The original frontend sends the literal string "null" (or an empty string)
// rather than a JSON null.
const milestoneCleared = "null"

type TaskService interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*TaskDetail, error)
	GetByID(ctx context.Context, taskID string) (*TaskDetail, error)
	Update(ctx context.Context, taskID string, req *UpdateTaskRequest) (*TaskDetail, error)
	Delete(ctx context.Context, taskID string) error

	List(ctx context.Context, filter *TaskFilter) ([]*TaskDetail, error)

	// ClearAll deletes every task and zeroes all project progress in bulk,
	// without per-task aggregation. Returns the number of deleted tasks.
	ClearAll(ctx context.Context) (int64, error)
}

// TaskDetail is a task with its assignee references expanded.
type TaskDetail struct {
	Task      *repository.Task
	Assignees []*repository.User
}

type TaskFilter struct {
	ProjectID   string
	MilestoneID string
	AssigneeID  string
}

type CreateTaskRequest struct {
	ProjectID   string
	MilestoneID *string
	Name        string
	Description *string
	AssignedTo  []string
	Status      string
	Progress    int
	Priority    string
	StartDate   *time.Time
	DueDate     *time.Time
	CreatedBy   *string
}

type UpdateTaskRequest struct {
	ProjectID   *string
	MilestoneID *string // raw value; "null" or "" clears the association
	Name        *string
	Description *string
	AssignedTo  *[]string
	Status      *string
	Progress    *int
	Priority    *string
	StartDate   *time.Time
	DueDate     *time.Time
}

type taskService struct {
	taskRepo      repository.TaskRepository
	projectRepo   repository.ProjectRepository
	milestoneRepo repository.MilestoneRepository
	userRepo      repository.UserRepository
	progressSvc   ProgressService
	broadcaster   *socket.Broadcaster
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	milestoneRepo repository.MilestoneRepository,
	userRepo repository.UserRepository,
	progressSvc ProgressService,
	broadcaster *socket.Broadcaster,
) TaskService {
	return &taskService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		milestoneRepo: milestoneRepo,
		userRepo:      userRepo,
		progressSvc:   progressSvc,
		broadcaster:   broadcaster,
	}
}

// ============================================
// CREATE
// ============================================

func (s *taskService) Create(ctx context.Context, req *CreateTaskRequest) (*TaskDetail, error) {
	// Verify project exists
	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil || project == nil {
		return nil, ErrNotFound
	}

	// Verify milestone exists and belongs to the same project (if provided).
	// Both checks run before any write.
	if req.MilestoneID != nil {
		milestone, err := s.milestoneRepo.FindByID(ctx, *req.MilestoneID)
		if err != nil || milestone == nil {
			return nil, ErrNotFound
		}
		if milestone.ProjectID != req.ProjectID {
			return nil, ErrMilestoneMismatch
		}
	}

	// Set defaults
	if req.Status == "" {
		req.Status = types.StatusNotStarted
	}
	if req.Priority == "" {
		req.Priority = types.PriorityMedium
	}

	if !types.IsValidTaskStatus(req.Status) || !types.IsValidPriority(req.Priority) {
		return nil, ErrInvalidInput
	}
	if req.Progress < 0 || req.Progress > 100 {
		return nil, ErrInvalidInput
	}

	// A completed task is always at 100, regardless of caller-supplied progress
	progress := req.Progress
	if req.Status == types.StatusCompleted {
		progress = 100
	}

	task := &repository.Task{
		ProjectID:   req.ProjectID,
		MilestoneID: req.MilestoneID,
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Progress:    progress,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		CreatedBy:   req.CreatedBy,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Aggregates are best-effort: the task write is never rolled back
	s.recalcProject(ctx, task.ProjectID)
	if task.MilestoneID != nil {
		s.recalcMilestone(ctx, *task.MilestoneID)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskCreated(task.ProjectID, task.ID)
	}

	return s.withAssignees(ctx, task)
}

// ============================================
// READ
// ============================================

func (s *taskService) GetByID(ctx context.Context, taskID string) (*TaskDetail, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return s.withAssignees(ctx, task)
}

func (s *taskService) List(ctx context.Context, filter *TaskFilter) ([]*TaskDetail, error) {
	var (
		tasks []*repository.Task
		err   error
	)
	switch {
	case filter != nil && filter.ProjectID != "":
		tasks, err = s.taskRepo.FindByProjectID(ctx, filter.ProjectID)
	case filter != nil && filter.MilestoneID != "":
		tasks, err = s.taskRepo.FindByMilestoneID(ctx, filter.MilestoneID)
	case filter != nil && filter.AssigneeID != "":
		tasks, err = s.taskRepo.FindByAssigneeID(ctx, filter.AssigneeID)
	default:
		tasks, err = s.taskRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s.withAssigneesBatch(ctx, tasks)
}

// ============================================
// UPDATE
// ============================================

func (s *taskService) Update(ctx context.Context, taskID string, req *UpdateTaskRequest) (*TaskDetail, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	// Capture old parents so stale aggregates on the source entities get
	// recomputed after a move
	oldProjectID := task.ProjectID
	oldMilestoneID := task.MilestoneID

	if req.ProjectID != nil && *req.ProjectID != task.ProjectID {
		project, err := s.projectRepo.FindByID(ctx, *req.ProjectID)
		if err != nil || project == nil {
			return nil, ErrNotFound
		}
		task.ProjectID = *req.ProjectID
	}

	if req.MilestoneID != nil {
		if *req.MilestoneID == milestoneCleared || *req.MilestoneID == "" {
			task.MilestoneID = nil
		} else {
			milestone, err := s.milestoneRepo.FindByID(ctx, *req.MilestoneID)
			if err != nil || milestone == nil {
				return nil, ErrNotFound
			}
			if milestone.ProjectID != task.ProjectID {
				return nil, ErrMilestoneMismatch
			}
			id := *req.MilestoneID
			task.MilestoneID = &id
		}
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}
	if req.Priority != nil {
		if !types.IsValidPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		task.Priority = *req.Priority
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, ErrInvalidInput
		}
		task.Progress = *req.Progress
	}
	if req.Status != nil {
		if !types.IsValidTaskStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		// Transitioning into completed forces progress to 100, overriding
		// any caller-supplied progress in the same request
		if *req.Status == types.StatusCompleted && task.Status != types.StatusCompleted {
			task.Progress = 100
		}
		task.Status = *req.Status
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	// Recompute aggregates for both old and new parents
	s.recalcProject(ctx, task.ProjectID)
	if oldProjectID != task.ProjectID {
		s.recalcProject(ctx, oldProjectID)
	}
	if task.MilestoneID != nil {
		s.recalcMilestone(ctx, *task.MilestoneID)
	}
	if oldMilestoneID != nil && (task.MilestoneID == nil || *oldMilestoneID != *task.MilestoneID) {
		s.recalcMilestone(ctx, *oldMilestoneID)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskUpdated(task.ProjectID, task.ID)
	}

	return s.withAssignees(ctx, task)
}

// ============================================
// DELETE
// ============================================

func (s *taskService) Delete(ctx context.Context, taskID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}

	// Capture parents before the row disappears
	projectID := task.ProjectID
	milestoneID := task.MilestoneID

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.recalcProject(ctx, projectID)
	if milestoneID != nil {
		s.recalcMilestone(ctx, *milestoneID)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskDeleted(projectID, taskID)
	}
	return nil
}

func (s *taskService) ClearAll(ctx context.Context) (int64, error) {
	deleted, err := s.taskRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projectRepo.ResetAllProgress(ctx); err != nil {
		log.Printf("[Progress] failed to reset project progress after clear-all: %v", err)
	}
	return deleted, nil
}

// ============================================
// Helpers
// ============================================

// recalcProject runs the project aggregate best-effort. Failures are logged
// and swallowed; the triggering task write already succeeded.
func (s *taskService) recalcProject(ctx context.Context, projectID string) {
	if err := s.progressSvc.RecalculateProjectProgress(ctx, projectID); err != nil {
		log.Printf("[Progress] project %s recalculation failed: %v", projectID, err)
	}
}

func (s *taskService) recalcMilestone(ctx context.Context, milestoneID string) {
	if err := s.progressSvc.RecalculateMilestoneProgress(ctx, milestoneID); err != nil {
		log.Printf("[Progress] milestone %s recalculation failed: %v", milestoneID, err)
	}
}

func (s *taskService) withAssignees(ctx context.Context, task *repository.Task) (*TaskDetail, error) {
	detail := &TaskDetail{Task: task}
	if len(task.AssignedTo) > 0 {
		users, err := s.userRepo.FindByIDs(ctx, task.AssignedTo)
		if err != nil {
			return nil, err
		}
		detail.Assignees = users
	}
	return detail, nil
}

func (s *taskService) withAssigneesBatch(ctx context.Context, tasks []*repository.Task) ([]*TaskDetail, error) {
	seen := map[string]bool{}
	var ids []string
	for _, t := range tasks {
		for _, id := range t.AssignedTo {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	byID := map[string]*repository.User{}
	if len(ids) > 0 {
		users, err := s.userRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			byID[u.ID] = u
		}
	}

	details := make([]*TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		d := &TaskDetail{Task: t}
		for _, id := range t.AssignedTo {
			if u := byID[id]; u != nil {
				d.Assignees = append(d.Assignees, u)
			}
		}
		details = append(details, d)
	}
	return details, nil
}
