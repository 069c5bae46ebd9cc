package handlers

import (
	"net/http"

	"github.com/encikiz/planr-backend/internal/api/middleware"
	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService   service.ProjectService
	taskService      service.TaskService
	milestoneService service.MilestoneService
}

func (h *ProjectHandler) List(c *gin.Context) {
	details, err := h.projectService.List(c.Request.Context())
	if err != nil {
		logAPIError(c, "Project.List", err, nil)
		handleServiceError(c, err)
		return
	}

	response := make([]models.ProjectResponse, len(details))
	for i, d := range details {
		response[i] = toProjectResponse(d)
	}
	c.JSON(http.StatusOK, response)
}

// Get accepts either the native project ID or the numeric legacy alias
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID := c.Param("id")
	detail, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		logAPIError(c, "Project.Get", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(detail))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.projectService.Create(c.Request.Context(), &service.CreateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TeamMembers: req.TeamMembers,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		LegacyID:    req.LegacyID,
		CreatedBy:   &userID,
	})
	if err != nil {
		logAPIError(c, "Project.Create", err, map[string]interface{}{"name": req.Name})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(detail))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	projectID := c.Param("id")

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.projectService.Update(c.Request.Context(), projectID, &service.UpdateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TeamMembers: req.TeamMembers,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		logAPIError(c, "Project.Update", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(detail))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID := c.Param("id")
	if err := h.projectService.Delete(c.Request.Context(), projectID); err != nil {
		logAPIError(c, "Project.Delete", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// ListTasks returns the tasks of one project
func (h *ProjectHandler) ListTasks(c *gin.Context) {
	projectID := c.Param("id")

	// Resolve legacy aliases to the native ID before filtering tasks
	detail, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		logAPIError(c, "Project.ListTasks", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), &service.TaskFilter{ProjectID: detail.Project.ID})
	if err != nil {
		logAPIError(c, "Project.ListTasks", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponseList(tasks))
}

// ListMilestones returns the milestones of one project
func (h *ProjectHandler) ListMilestones(c *gin.Context) {
	projectID := c.Param("id")

	detail, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		logAPIError(c, "Project.ListMilestones", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	milestones, err := h.milestoneService.List(c.Request.Context(), detail.Project.ID)
	if err != nil {
		logAPIError(c, "Project.ListMilestones", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	response := make([]models.MilestoneResponse, len(milestones))
	for i, m := range milestones {
		response[i] = toMilestoneResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// CreateMilestone creates a milestone under the project in the URL
func (h *ProjectHandler) CreateMilestone(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	detail, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		logAPIError(c, "Project.CreateMilestone", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	var req models.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := h.milestoneService.Create(c.Request.Context(), &service.CreateMilestoneRequest{
		ProjectID:    detail.Project.ID,
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		Progress:     req.Progress,
		Deliverables: req.Deliverables,
		DueDate:      req.DueDate,
		CreatedBy:    &userID,
	})
	if err != nil {
		logAPIError(c, "Project.CreateMilestone", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMilestoneResponse(milestone))
}
