package handlers

import (
	"log"
	"net/http"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Project   *ProjectHandler
	Task      *TaskHandler
	Milestone *MilestoneHandler
	Team      *TeamHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      &AuthHandler{authService: services.Auth, cfg: cfg},
		User:      &UserHandler{userService: services.User},
		Project:   &ProjectHandler{projectService: services.Project, taskService: services.Task, milestoneService: services.Milestone},
		Task:      &TaskHandler{taskService: services.Task},
		Milestone: &MilestoneHandler{milestoneService: services.Milestone},
		Team:      &TeamHandler{teamService: services.Team},
	}
}

func handleServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case service.ErrMilestoneMismatch:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Milestone does not belong to the specified project"})
	case service.ErrUnauthorized, service.ErrInvalidCredentials, service.ErrInvalidToken:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case service.ErrUserExists:
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func logAPIError(c *gin.Context, action string, err error, fields map[string]interface{}) {
	log.Printf(
		"[API_ERROR] action=%s method=%s path=%s userID=%v fields=%v err=%v",
		action,
		c.Request.Method,
		c.FullPath(),
		c.GetString("userID"),
		fields,
		err,
	)
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		Avatar:     u.Avatar,
		IsGuest:    u.IsGuest,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toUserResponseList(users []*repository.User) []models.UserResponse {
	response := make([]models.UserResponse, len(users))
	for i, u := range users {
		response[i] = toUserResponse(u)
	}
	return response
}

func toProjectResponse(d *service.ProjectDetail) models.ProjectResponse {
	p := d.Project
	return models.ProjectResponse{
		ID:          p.ID,
		LegacyID:    p.LegacyID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Progress:    p.Progress,
		Priority:    p.Priority,
		TeamMembers: toUserResponseList(d.Members),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toTaskResponse(d *service.TaskDetail) models.TaskResponse {
	t := d.Task
	return models.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		MilestoneID: t.MilestoneID,
		Name:        t.Name,
		Description: t.Description,
		AssignedTo:  toUserResponseList(d.Assignees),
		Status:      t.Status,
		Progress:    t.Progress,
		Priority:    t.Priority,
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponseList(details []*service.TaskDetail) []models.TaskResponse {
	response := make([]models.TaskResponse, len(details))
	for i, d := range details {
		response[i] = toTaskResponse(d)
	}
	return response
}

func toMilestoneResponse(m *repository.Milestone) models.MilestoneResponse {
	return models.MilestoneResponse{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		Name:         m.Name,
		Description:  m.Description,
		Status:       m.Status,
		Progress:     m.Progress,
		Deliverables: safeStringSlice(m.Deliverables),
		DueDate:      m.DueDate,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTeamResponse(t *repository.Team) models.TeamResponse {
	return models.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		TeamLeader:  t.TeamLeader,
		Projects:    safeStringSlice(t.Projects),
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTeamMemberResponse(m *repository.TeamMember) models.TeamMemberResponse {
	resp := models.TeamMemberResponse{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		u := toUserResponse(m.User)
		resp.User = &u
	}
	return resp
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
