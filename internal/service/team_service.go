package service

import (
	"context"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/types"
)

type TeamService interface {
	Create(ctx context.Context, req *CreateTeamRequest) (*repository.Team, error)
	GetByID(ctx context.Context, teamID string) (*repository.Team, error)
	List(ctx context.Context) ([]*repository.Team, error)
	Update(ctx context.Context, teamID string, req *UpdateTeamRequest) (*repository.Team, error)
	Delete(ctx context.Context, teamID string) error

	// Members
	ListMembers(ctx context.Context, teamID string) ([]*repository.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID, role string) (*repository.TeamMember, error)
	UpdateMemberRole(ctx context.Context, teamID, userID, role string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
}

type CreateTeamRequest struct {
	Name        string
	Description *string
	TeamLeader  *string
	Projects    []string
	CreatedBy   *string
}

type UpdateTeamRequest struct {
	Name        *string
	Description *string
	TeamLeader  *string
	Projects    *[]string
}

type teamService struct {
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

func (s *teamService) Create(ctx context.Context, req *CreateTeamRequest) (*repository.Team, error) {
	if req.TeamLeader != nil {
		leader, err := s.userRepo.FindByID(ctx, *req.TeamLeader)
		if err != nil || leader == nil {
			return nil, ErrNotFound
		}
	}

	team := &repository.Team{
		Name:        req.Name,
		Description: req.Description,
		TeamLeader:  req.TeamLeader,
		Projects:    req.Projects,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	// The leader joins as a member automatically
	if req.TeamLeader != nil {
		member := &repository.TeamMember{
			TeamID: team.ID,
			UserID: *req.TeamLeader,
			Role:   types.RoleLeader,
		}
		if err := s.teamRepo.AddMember(ctx, member); err != nil {
			return nil, err
		}
	}

	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, teamID string) (*repository.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*repository.Team, error) {
	return s.teamRepo.FindAll(ctx)
}

func (s *teamService) Update(ctx context.Context, teamID string, req *UpdateTeamRequest) (*repository.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = req.Description
	}
	if req.TeamLeader != nil {
		leader, err := s.userRepo.FindByID(ctx, *req.TeamLeader)
		if err != nil || leader == nil {
			return nil, ErrNotFound
		}
		team.TeamLeader = req.TeamLeader
	}
	if req.Projects != nil {
		team.Projects = *req.Projects
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, teamID string) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}
	return s.teamRepo.Delete(ctx, teamID)
}

func (s *teamService) ListMembers(ctx context.Context, teamID string) ([]*repository.TeamMember, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}
	return s.teamRepo.FindMembers(ctx, teamID)
}

func (s *teamService) AddMember(ctx context.Context, teamID, userID, role string) (*repository.TeamMember, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrNotFound
	}

	if role == "" {
		role = types.RoleMember
	}

	member := &repository.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	member.User = user
	return member, nil
}

func (s *teamService) UpdateMemberRole(ctx context.Context, teamID, userID, role string) error {
	member, err := s.teamRepo.FindMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	return s.teamRepo.UpdateMemberRole(ctx, teamID, userID, role)
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	member, err := s.teamRepo.FindMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	return s.teamRepo.RemoveMember(ctx, teamID, userID)
}
