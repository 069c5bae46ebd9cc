package models

import "time"

// ============================================
// AUTH REQUESTS & RESPONSES
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ============================================
// USER REQUESTS & RESPONSES
// ============================================

type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      *string `json:"email"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	Avatar     *string `json:"avatar"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Avatar     *string `json:"avatar"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Role       string    `json:"role"`
	Department *string   `json:"department"`
	Avatar     *string   `json:"avatar"`
	IsGuest    bool      `json:"isGuest"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ============================================
// PROJECT REQUESTS & RESPONSES
// ============================================

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	TeamMembers []string   `json:"teamMembers"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	LegacyID    *int       `json:"legacyId"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	TeamMembers *[]string  `json:"teamMembers"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type ProjectResponse struct {
	ID          string         `json:"id"`
	LegacyID    *int           `json:"legacyId,omitempty"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Status      string         `json:"status"`
	Progress    int            `json:"progress"`
	Priority    string         `json:"priority"`
	TeamMembers []UserResponse `json:"teamMembers"`
	StartDate   *time.Time     `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	CreatedBy   *string        `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ============================================
// TASK REQUESTS & RESPONSES
// ============================================

type CreateTaskRequest struct {
	ProjectID   string     `json:"projectId" binding:"required"`
	MilestoneID *string    `json:"milestoneId"`
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	AssignedTo  []string   `json:"assignedTo"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest carries the milestone ID as a raw string: the literal
// "null" (or "") clears the association, matching the frontend contract.
type UpdateTaskRequest struct {
	ProjectID   *string    `json:"projectId"`
	MilestoneID *string    `json:"milestoneId"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	AssignedTo  *[]string  `json:"assignedTo"`
	Status      *string    `json:"status"`
	Progress    *int       `json:"progress"`
	Priority    *string    `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

type TaskResponse struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	MilestoneID *string        `json:"milestoneId"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	AssignedTo  []UserResponse `json:"assignedTo"`
	Status      string         `json:"status"`
	Progress    int            `json:"progress"`
	Priority    string         `json:"priority"`
	StartDate   *time.Time     `json:"startDate"`
	DueDate     *time.Time     `json:"dueDate"`
	CreatedBy   *string        `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ClearAllTasksResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// ============================================
// MILESTONE REQUESTS & RESPONSES
// ============================================

type CreateMilestoneRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	Deliverables []string   `json:"deliverables"`
	DueDate      *time.Time `json:"dueDate"`
}

type UpdateMilestoneRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Progress     *int       `json:"progress"`
	Deliverables *[]string  `json:"deliverables"`
	DueDate      *time.Time `json:"dueDate"`
}

type MilestoneResponse struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"projectId"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	Deliverables []string   `json:"deliverables"`
	DueDate      *time.Time `json:"dueDate"`
	CreatedBy    *string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ============================================
// TEAM REQUESTS & RESPONSES
// ============================================

type CreateTeamRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	TeamLeader  *string  `json:"teamLeader"`
	Projects    []string `json:"projects"`
}

type UpdateTeamRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	TeamLeader  *string   `json:"teamLeader"`
	Projects    *[]string `json:"projects"`
}

type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	TeamLeader  *string   `json:"teamLeader"`
	Projects    []string  `json:"projects"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AddTeamMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

type UpdateTeamMemberRequest struct {
	Role string `json:"role" binding:"required"`
}

type TeamMemberResponse struct {
	TeamID   string        `json:"teamId"`
	UserID   string        `json:"userId"`
	Role     string        `json:"role"`
	JoinedAt time.Time     `json:"joinedAt"`
	User     *UserResponse `json:"user,omitempty"`
}
