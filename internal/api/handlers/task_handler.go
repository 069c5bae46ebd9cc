package handlers

import (
	"net/http"

	"github.com/encikiz/planr-backend/internal/api/middleware"
	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Task Handler
// ============================================

type TaskHandler struct {
	taskService service.TaskService
}

// List returns tasks, optionally filtered by project, milestone or assignee
// query params. Filters are exclusive; the first one present wins.
func (h *TaskHandler) List(c *gin.Context) {
	filter := &service.TaskFilter{
		ProjectID:   c.Query("projectId"),
		MilestoneID: c.Query("milestoneId"),
		AssigneeID:  c.Query("assigneeId"),
	}

	tasks, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		logAPIError(c, "Task.List", err, map[string]interface{}{"filter": filter})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponseList(tasks))
}

func (h *TaskHandler) Get(c *gin.Context) {
	taskID := c.Param("id")
	task, err := h.taskService.GetByID(c.Request.Context(), taskID)
	if err != nil {
		logAPIError(c, "Task.Get", err, map[string]interface{}{"taskID": taskID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), &service.CreateTaskRequest{
		ProjectID:   req.ProjectID,
		MilestoneID: req.MilestoneID,
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Progress:    req.Progress,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		CreatedBy:   &userID,
	})
	if err != nil {
		logAPIError(c, "Task.Create", err, map[string]interface{}{
			"projectID": req.ProjectID,
			"name":      req.Name,
		})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, &service.UpdateTaskRequest{
		ProjectID:   req.ProjectID,
		MilestoneID: req.MilestoneID,
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Progress:    req.Progress,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		logAPIError(c, "Task.Update", err, map[string]interface{}{"taskID": taskID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")
	if err := h.taskService.Delete(c.Request.Context(), taskID); err != nil {
		logAPIError(c, "Task.Delete", err, map[string]interface{}{"taskID": taskID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// ClearAll wipes every task and zeroes project progress. Registered on a
// literal path segment so it must come before the /:id route.
func (h *TaskHandler) ClearAll(c *gin.Context) {
	deleted, err := h.taskService.ClearAll(c.Request.Context())
	if err != nil {
		logAPIError(c, "Task.ClearAll", err, nil)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ClearAllTasksResponse{
		Message:      "All tasks deleted",
		DeletedCount: deleted,
	})
}
