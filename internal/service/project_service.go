package service

import (
	"context"
	"strconv"
	"time"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/socket"
	"github.com/encikiz/planr-backend/internal/types"
	"github.com/google/uuid"
)

type ProjectService interface {
	Create(ctx context.Context, req *CreateProjectRequest) (*ProjectDetail, error)
	Get(ctx context.Context, idOrAlias string) (*ProjectDetail, error)
	List(ctx context.Context) ([]*ProjectDetail, error)
	Update(ctx context.Context, idOrAlias string, req *UpdateProjectRequest) (*ProjectDetail, error)
	Delete(ctx context.Context, idOrAlias string) error
}

// ProjectDetail is a project with its team member references expanded.
type ProjectDetail struct {
	Project *repository.Project
	Members []*repository.User
}

type CreateProjectRequest struct {
	Name        string
	Description *string
	Status      string
	Priority    string
	TeamMembers []string
	StartDate   *time.Time
	EndDate     *time.Time
	LegacyID    *int
	CreatedBy   *string
}

type UpdateProjectRequest struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	TeamMembers *[]string
	StartDate   *time.Time
	EndDate     *time.Time
}

type projectService struct {
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
	milestoneRepo repository.MilestoneRepository
	userRepo      repository.UserRepository
	broadcaster   *socket.Broadcaster
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	milestoneRepo repository.MilestoneRepository,
	userRepo repository.UserRepository,
	broadcaster *socket.Broadcaster,
) ProjectService {
	return &projectService{
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		milestoneRepo: milestoneRepo,
		userRepo:      userRepo,
		broadcaster:   broadcaster,
	}
}

// resolve looks a project up by its native UUID first; when the identifier
// doesn't parse as a UUID it falls back to the numeric legacy alias kept from
// the pre-migration addressing scheme.
func (s *projectService) resolve(ctx context.Context, idOrAlias string) (*repository.Project, error) {
	if _, err := uuid.Parse(idOrAlias); err == nil {
		return s.projectRepo.FindByID(ctx, idOrAlias)
	}
	legacyID, err := strconv.Atoi(idOrAlias)
	if err != nil {
		return nil, nil
	}
	return s.projectRepo.FindByLegacyID(ctx, legacyID)
}

func (s *projectService) Create(ctx context.Context, req *CreateProjectRequest) (*ProjectDetail, error) {
	if req.Status == "" {
		req.Status = types.StatusNotStarted
	}
	if req.Priority == "" {
		req.Priority = types.PriorityMedium
	}
	if !types.IsValidProjectStatus(req.Status) || !types.IsValidPriority(req.Priority) {
		return nil, ErrInvalidInput
	}

	project := &repository.Project{
		LegacyID:    req.LegacyID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TeamMembers: req.TeamMembers,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   req.CreatedBy,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectUpdated(project.ID)
	}
	return s.withMembers(ctx, project)
}

func (s *projectService) Get(ctx context.Context, idOrAlias string) (*ProjectDetail, error) {
	project, err := s.resolve(ctx, idOrAlias)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return s.withMembers(ctx, project)
}

func (s *projectService) List(ctx context.Context) ([]*ProjectDetail, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// One user fetch across all projects
	seen := map[string]bool{}
	var ids []string
	for _, p := range projects {
		for _, id := range p.TeamMembers {
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

	details := make([]*ProjectDetail, 0, len(projects))
	for _, p := range projects {
		d := &ProjectDetail{Project: p}
		for _, id := range p.TeamMembers {
			if u := byID[id]; u != nil {
				d.Members = append(d.Members, u)
			}
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *projectService) Update(ctx context.Context, idOrAlias string, req *UpdateProjectRequest) (*ProjectDetail, error) {
	project, err := s.resolve(ctx, idOrAlias)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Status != nil {
		if !types.IsValidProjectStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		project.Status = *req.Status
	}
	if req.Priority != nil {
		if !types.IsValidPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		project.Priority = *req.Priority
	}
	if req.TeamMembers != nil {
		project.TeamMembers = *req.TeamMembers
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectUpdated(project.ID)
	}
	return s.withMembers(ctx, project)
}

// Delete removes a project and cascades to its tasks and milestones in the
// service layer, matching the original application-level cascade.
func (s *projectService) Delete(ctx context.Context, idOrAlias string) error {
	project, err := s.resolve(ctx, idOrAlias)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	if err := s.taskRepo.DeleteByProjectID(ctx, project.ID); err != nil {
		return err
	}
	if err := s.milestoneRepo.DeleteByProjectID(ctx, project.ID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectDeleted(project.ID)
	}
	return nil
}

func (s *projectService) withMembers(ctx context.Context, project *repository.Project) (*ProjectDetail, error) {
	detail := &ProjectDetail{Project: project}
	if len(project.TeamMembers) > 0 {
		users, err := s.userRepo.FindByIDs(ctx, project.TeamMembers)
		if err != nil {
			return nil, err
		}
		detail.Members = users
	}
	return detail, nil
}
