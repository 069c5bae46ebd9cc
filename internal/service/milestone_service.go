package service

import (
	"context"
	"time"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/types"
)

type MilestoneService interface {
	Create(ctx context.Context, req *CreateMilestoneRequest) (*repository.Milestone, error)
	GetByID(ctx context.Context, milestoneID string) (*repository.Milestone, error)
	List(ctx context.Context, projectID string) ([]*repository.Milestone, error)
	Update(ctx context.Context, milestoneID string, req *UpdateMilestoneRequest) (*repository.Milestone, error)
	Delete(ctx context.Context, milestoneID string) error
}

type CreateMilestoneRequest struct {
	ProjectID    string
	Name         string
	Description  *string
	Status       string
	Progress     int
	Deliverables []string
	DueDate      *time.Time
	CreatedBy    *string
}

type UpdateMilestoneRequest struct {
	Name         *string
	Description  *string
	Status       *string
	Progress     *int
	Deliverables *[]string
	DueDate      *time.Time
}

type milestoneService struct {
	milestoneRepo repository.MilestoneRepository
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
}

func NewMilestoneService(
	milestoneRepo repository.MilestoneRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
) MilestoneService {
	return &milestoneService{
		milestoneRepo: milestoneRepo,
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
	}
}

func (s *milestoneService) Create(ctx context.Context, req *CreateMilestoneRequest) (*repository.Milestone, error) {
	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil || project == nil {
		return nil, ErrNotFound
	}

	if req.Status == "" {
		req.Status = types.StatusNotStarted
	}
	if !types.IsValidTaskStatus(req.Status) {
		return nil, ErrInvalidInput
	}
	if req.Progress < 0 || req.Progress > 100 {
		return nil, ErrInvalidInput
	}

	milestone := &repository.Milestone{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		Progress:     req.Progress,
		Deliverables: req.Deliverables,
		DueDate:      req.DueDate,
		CreatedBy:    req.CreatedBy,
	}

	if err := s.milestoneRepo.Create(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *milestoneService) GetByID(ctx context.Context, milestoneID string) (*repository.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, ErrNotFound
	}
	return milestone, nil
}

func (s *milestoneService) List(ctx context.Context, projectID string) ([]*repository.Milestone, error) {
	if projectID != "" {
		return s.milestoneRepo.FindByProjectID(ctx, projectID)
	}
	return s.milestoneRepo.FindAll(ctx)
}

// Update edits the authored fields of a milestone. Progress and status are
// normally derived from the attached tasks; direct writes here are honored
// but will be overwritten by the next task mutation on this milestone.
func (s *milestoneService) Update(ctx context.Context, milestoneID string, req *UpdateMilestoneRequest) (*repository.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		milestone.Name = *req.Name
	}
	if req.Description != nil {
		milestone.Description = req.Description
	}
	if req.Status != nil {
		if !types.IsValidTaskStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		milestone.Status = *req.Status
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, ErrInvalidInput
		}
		milestone.Progress = *req.Progress
	}
	if req.Deliverables != nil {
		milestone.Deliverables = *req.Deliverables
	}
	if req.DueDate != nil {
		milestone.DueDate = req.DueDate
	}

	if err := s.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *milestoneService) Delete(ctx context.Context, milestoneID string) error {
	milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	if milestone == nil {
		return ErrNotFound
	}
	return s.milestoneRepo.Delete(ctx, milestoneID)
}
