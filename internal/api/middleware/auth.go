package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Caller is the authenticated identity attached to the request context.
type Caller struct {
	UserID  string
	IsGuest bool
}

// CallerResolver attempts to resolve a caller from one credential source.
// Resolvers never error; a miss just means the next resolver gets a try.
type CallerResolver interface {
	Resolve(c *gin.Context) *Caller
}

// SessionResolver resolves the caller from the session cookie via the
// server-side session store.
type SessionResolver struct {
	Auth   service.AuthService
	Cookie string
}

func (r *SessionResolver) Resolve(c *gin.Context) *Caller {
	sessionID, err := c.Cookie(r.Cookie)
	if err != nil || sessionID == "" {
		return nil
	}

	session, err := r.Auth.ResolveSession(c.Request.Context(), sessionID)
	if err != nil {
		return nil
	}
	return &Caller{UserID: session.UserID, IsGuest: session.IsGuest}
}

// TokenResolver resolves the caller from a signed token, read from the token
// cookie first and the Authorization header second.
type TokenResolver struct {
	Auth   service.AuthService
	Cookie string
}

func (r *TokenResolver) Resolve(c *gin.Context) *Caller {
	tokenString, _ := c.Cookie(r.Cookie)
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		return nil
	}

	token, err := r.Auth.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return nil
	}

	userID, isGuest, err := r.Auth.CallerFromToken(token)
	if err != nil {
		return nil
	}
	return &Caller{UserID: userID, IsGuest: isGuest}
}

// NewResolvers builds the resolver chain in priority order: server-side
// session first, then token. Order is fixed so a stale cookie from one mode
// cannot shadow a fresh credential from the other inconsistently.
func NewResolvers(cfg *config.Config, auth service.AuthService) []CallerResolver {
	return []CallerResolver{
		&SessionResolver{Auth: auth, Cookie: cfg.SessionCookie},
		&TokenResolver{Auth: auth, Cookie: cfg.TokenCookie},
	}
}

// AuthMiddleware walks the resolver chain and rejects the request with 401
// when no resolver produces a caller.
func AuthMiddleware(resolvers ...CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, r := range resolvers {
			if caller := r.Resolve(c); caller != nil {
				c.Set("userID", caller.UserID)
				c.Set("isGuest", caller.IsGuest)
				c.Next()
				return
			}
		}

		log.Printf("❌ [Auth] No valid credentials - Path: %s", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		c.Abort()
	}
}

// RequireFullAccess blocks guest callers from mutating endpoints. Guests can
// browse everything but write nothing.
func RequireFullAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isGuest, _ := c.Get("isGuest"); isGuest == true {
			log.Printf("⚠️ [Auth] Guest blocked from mutation - Path: %s", c.Request.URL.Path)
			c.JSON(http.StatusForbidden, gin.H{"error": "Guest accounts are read-only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger logs all incoming requests with details
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		statusEmoji := "✅"
		if status >= 400 && status < 500 {
			statusEmoji = "⚠️"
		} else if status >= 500 {
			statusEmoji = "❌"
		}

		log.Printf("%s [%s] %s %d - %v", statusEmoji, method, path, status, duration)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Printf("❌ [Error] %v", e.Err)
			}
		}
	}
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}

// IsGuest reports whether the current caller is a guest
func IsGuest(c *gin.Context) bool {
	isGuest, exists := c.Get("isGuest")
	if !exists {
		return false
	}
	return isGuest.(bool)
}

// RequireUserID returns error if user ID is not in context
func RequireUserID(c *gin.Context) (string, bool) {
	userID := GetUserID(c)
	if userID == "" {
		log.Printf("❌ [Auth] User not authenticated - Path: %s", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return userID, true
}
