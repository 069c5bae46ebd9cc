package handlers

import (
	"net/http"
	"time"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/models"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Auth Handler
// ============================================

type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, creds, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		logAPIError(c, "Auth.Register", err, map[string]interface{}{"email": req.Email})
		handleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, creds)
	c.JSON(http.StatusCreated, models.AuthResponse{
		User:  toUserResponse(user),
		Token: creds.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, creds, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logAPIError(c, "Auth.Login", err, map[string]interface{}{"email": req.Email})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	h.setAuthCookies(c, creds)
	c.JSON(http.StatusOK, models.AuthResponse{
		User:  toUserResponse(user),
		Token: creds.Token,
	})
}

// LoginAsGuest issues a throwaway read-only identity. No request body.
func (h *AuthHandler) LoginAsGuest(c *gin.Context) {
	user, creds, err := h.authService.LoginAsGuest(c.Request.Context())
	if err != nil {
		logAPIError(c, "Auth.LoginAsGuest", err, nil)
		handleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, creds)
	c.JSON(http.StatusOK, models.AuthResponse{
		User:  toUserResponse(user),
		Token: creds.Token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(h.cfg.SessionCookie)
	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		logAPIError(c, "Auth.Logout", err, nil)
	}

	// Expire both cookies regardless of which mode was in use
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(h.cfg.TokenCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// setAuthCookies installs both credential cookies. The session cookie is only
// set when a server-side session was actually created.
func (h *AuthHandler) setAuthCookies(c *gin.Context, creds *service.Credentials) {
	tokenMaxAge := int(time.Duration(h.cfg.JWTExpiry) * time.Hour / time.Second)
	c.SetCookie(h.cfg.TokenCookie, creds.Token, tokenMaxAge, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)

	if creds.SessionID != "" {
		sessionMaxAge := int(time.Duration(h.cfg.SessionTTL) * time.Hour / time.Second)
		c.SetCookie(h.cfg.SessionCookie, creds.SessionID, sessionMaxAge, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	}
}
