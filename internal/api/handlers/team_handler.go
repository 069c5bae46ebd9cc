package handlers

import (
	"net/http"

	"github.com/encikiz/planr-backend/internal/api/middleware"
	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Team Handler
// ============================================

type TeamHandler struct {
	teamService service.TeamService
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teamService.List(c.Request.Context())
	if err != nil {
		logAPIError(c, "Team.List", err, nil)
		handleServiceError(c, err)
		return
	}

	response := make([]models.TeamResponse, len(teams))
	for i, t := range teams {
		response[i] = toTeamResponse(t)
	}
	c.JSON(http.StatusOK, response)
}

func (h *TeamHandler) Get(c *gin.Context) {
	teamID := c.Param("id")
	team, err := h.teamService.GetByID(c.Request.Context(), teamID)
	if err != nil {
		logAPIError(c, "Team.Get", err, map[string]interface{}{"teamID": teamID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTeamResponse(team))
}

func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), &service.CreateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
		TeamLeader:  req.TeamLeader,
		Projects:    req.Projects,
		CreatedBy:   &userID,
	})
	if err != nil {
		logAPIError(c, "Team.Create", err, map[string]interface{}{"name": req.Name})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTeamResponse(team))
}

func (h *TeamHandler) Update(c *gin.Context) {
	teamID := c.Param("id")

	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), teamID, &service.UpdateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
		TeamLeader:  req.TeamLeader,
		Projects:    req.Projects,
	})
	if err != nil {
		logAPIError(c, "Team.Update", err, map[string]interface{}{"teamID": teamID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTeamResponse(team))
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID := c.Param("id")
	if err := h.teamService.Delete(c.Request.Context(), teamID); err != nil {
		logAPIError(c, "Team.Delete", err, map[string]interface{}{"teamID": teamID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// ============================================
// Team Members
// ============================================

func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID := c.Param("id")
	members, err := h.teamService.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		logAPIError(c, "Team.ListMembers", err, map[string]interface{}{"teamID": teamID})
		handleServiceError(c, err)
		return
	}

	response := make([]models.TeamMemberResponse, len(members))
	for i, m := range members {
		response[i] = toTeamMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID := c.Param("id")

	var req models.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.teamService.AddMember(c.Request.Context(), teamID, req.UserID, req.Role)
	if err != nil {
		logAPIError(c, "Team.AddMember", err, map[string]interface{}{
			"teamID": teamID,
			"userID": req.UserID,
		})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTeamMemberResponse(member))
}

func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	teamID := c.Param("id")
	userID := c.Param("userId")

	var req models.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.teamService.UpdateMemberRole(c.Request.Context(), teamID, userID, req.Role); err != nil {
		logAPIError(c, "Team.UpdateMemberRole", err, map[string]interface{}{
			"teamID": teamID,
			"userID": userID,
		})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member role updated"})
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID := c.Param("id")
	userID := c.Param("userId")

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, userID); err != nil {
		logAPIError(c, "Team.RemoveMember", err, map[string]interface{}{
			"teamID": teamID,
			"userID": userID,
		})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
