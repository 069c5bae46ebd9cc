package service

import (
	"errors"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Cross-reference mismatch on the task write path
	ErrMilestoneMismatch = errors.New("milestone does not belong to the specified project")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth      AuthService
	User      UserService
	Project   ProjectService
	Task      TaskService
	Milestone MilestoneService
	Team      TeamService
	Progress  ProgressService
}

type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Sessions    SessionStore // nil when redis is not configured
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	progressSvc := NewProgressService(deps.Repos.TaskRepo, deps.Repos.ProjectRepo, deps.Repos.MilestoneRepo, deps.Broadcaster)

	return &Services{
		Auth:      NewAuthService(deps.Config, deps.Repos.UserRepo, deps.Sessions),
		User:      NewUserService(deps.Repos.UserRepo),
		Project:   NewProjectService(deps.Repos.ProjectRepo, deps.Repos.TaskRepo, deps.Repos.MilestoneRepo, deps.Repos.UserRepo, deps.Broadcaster),
		Task:      NewTaskService(deps.Repos.TaskRepo, deps.Repos.ProjectRepo, deps.Repos.MilestoneRepo, deps.Repos.UserRepo, progressSvc, deps.Broadcaster),
		Milestone: NewMilestoneService(deps.Repos.MilestoneRepo, deps.Repos.ProjectRepo, deps.Repos.TaskRepo),
		Team:      NewTeamService(deps.Repos.TeamRepo, deps.Repos.UserRepo, deps.Repos.ProjectRepo),
		Progress:  progressSvc,
	}
}
