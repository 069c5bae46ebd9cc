package handlers

import (
	"net/http"

	"github.com/encikiz/planr-backend/internal/api/middleware"
	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
}

// GetCurrentUser returns the profile behind the current credentials.
// Registered under /auth/me.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		logAPIError(c, "User.GetCurrentUser", err, map[string]interface{}{"userID": userID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		logAPIError(c, "User.List", err, nil)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponseList(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	userID := c.Param("id")
	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		logAPIError(c, "User.Get", err, map[string]interface{}{"userID": userID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Create(c *gin.Context) {
	callerID := middleware.GetUserID(c)

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &service.CreateUserRequest{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Avatar:     req.Avatar,
		CreatedBy:  &callerID,
	})
	if err != nil {
		logAPIError(c, "User.Create", err, map[string]interface{}{"name": req.Name})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	userID := c.Param("id")

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, &service.UpdateUserRequest{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if err != nil {
		logAPIError(c, "User.Update", err, map[string]interface{}{"userID": userID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID := c.Param("id")
	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		logAPIError(c, "User.Delete", err, map[string]interface{}{"userID": userID})
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
