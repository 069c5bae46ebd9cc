package handlers

import (
	"net/http"

	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Milestone Handler
// ============================================

type MilestoneHandler struct {
	milestoneService service.MilestoneService
}

func (h *MilestoneHandler) List(c *gin.Context) {
	projectID := c.Query("projectId")
	milestones, err := h.milestoneService.List(c.Request.Context(), projectID)
	if err != nil {
		logAPIError(c, "Milestone.List", err, map[string]interface{}{"projectID": projectID})
		handleServiceError(c, err)
		return
	}

	response := make([]models.MilestoneResponse, len(milestones))
	for i, m := range milestones {
		response[i] = toMilestoneResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

func (h *MilestoneHandler) Get(c *gin.Context) {
	milestoneID := c.Param("id")
	milestone, err := h.milestoneService.GetByID(c.Request.Context(), milestoneID)
	if err != nil {
		logAPIError(c, "Milestone.Get", err, map[string]interface{}{"milestoneID": milestoneID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

func (h *MilestoneHandler) Update(c *gin.Context) {
	milestoneID := c.Param("id")

	var req models.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := h.milestoneService.Update(c.Request.Context(), milestoneID, &service.UpdateMilestoneRequest{
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		Progress:     req.Progress,
		Deliverables: req.Deliverables,
		DueDate:      req.DueDate,
	})
	if err != nil {
		logAPIError(c, "Milestone.Update", err, map[string]interface{}{"milestoneID": milestoneID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

func (h *MilestoneHandler) Delete(c *gin.Context) {
	milestoneID := c.Param("id")
	if err := h.milestoneService.Delete(c.Request.Context(), milestoneID); err != nil {
		logAPIError(c, "Milestone.Delete", err, map[string]interface{}{"milestoneID": milestoneID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted"})
}
