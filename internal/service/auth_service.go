package service

import (
	"context"
	"fmt"
	"time"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ============================================
// Auth Service
// ============================================

// Session is the server-side record behind a session cookie.
type Session struct {
	UserID  string `json:"userId"`
	IsGuest bool   `json:"isGuest"`
}

// SessionStore is the minimal session persistence surface. Satisfied by
// db.RedisDB; nil when redis is not configured (token auth still works,
// which is the point of the dual-mode design).
type SessionStore interface {
	SetSession(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetSession(ctx context.Context, key string, dest interface{}) error
	DeleteSession(ctx context.Context, key string) error
}

// Credentials carries everything a login issues: a signed token always, and
// a session ID when a session store is available.
type Credentials struct {
	Token     string
	SessionID string
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*repository.User, *Credentials, error)
	Login(ctx context.Context, email, password string) (*repository.User, *Credentials, error)
	LoginAsGuest(ctx context.Context) (*repository.User, *Credentials, error)
	Logout(ctx context.Context, sessionID string) error

	ValidateToken(token string) (*jwt.Token, error)
	CallerFromToken(token *jwt.Token) (userID string, isGuest bool, err error)
	ResolveSession(ctx context.Context, sessionID string) (*Session, error)
}

type authService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	sessions SessionStore
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, sessions SessionStore) AuthService {
	return &authService{cfg: cfg, userRepo: userRepo, sessions: sessions}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*repository.User, *Credentials, error) {
	existingUser, _ := s.userRepo.FindByEmail(ctx, email)
	if existingUser != nil {
		return nil, nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hash := string(hashedPassword)
	user := &repository.User{
		Name:         name,
		Email:        &email,
		PasswordHash: &hash,
		Role:         "member",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	creds, err := s.issueCredentials(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, creds, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*repository.User, *Credentials, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil || user.PasswordHash == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	creds, err := s.issueCredentials(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, creds, nil
}

// LoginAsGuest creates a fresh guest identity. Guests authenticate like any
// other caller but are restricted to read-only access.
func (s *authService) LoginAsGuest(ctx context.Context) (*repository.User, *Credentials, error) {
	user := &repository.User{
		Name:    "Guest User",
		Role:    "guest",
		IsGuest: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create guest user: %w", err)
	}

	creds, err := s.issueCredentials(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, creds, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if s.sessions == nil || sessionID == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	return token, nil
}

func (s *authService) CallerFromToken(token *jwt.Token) (string, bool, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, ErrInvalidToken
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", false, ErrInvalidToken
	}
	isGuest, _ := claims["isGuest"].(bool)
	return userID, isGuest, nil
}

func (s *authService) ResolveSession(ctx context.Context, sessionID string) (*Session, error) {
	if s.sessions == nil {
		return nil, ErrInvalidToken
	}
	var session Session
	if err := s.sessions.GetSession(ctx, sessionID, &session); err != nil {
		return nil, ErrInvalidToken
	}
	return &session, nil
}

// issueCredentials signs a JWT and, when a session store is available, also
// creates a server-side session. Session creation failure is not fatal: the
// token alone is a valid credential.
func (s *authService) issueCredentials(ctx context.Context, user *repository.User) (*Credentials, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	creds := &Credentials{Token: token}

	if s.sessions != nil {
		sessionID := uuid.New().String()
		session := &Session{UserID: user.ID, IsGuest: user.IsGuest}
		ttl := time.Duration(s.cfg.SessionTTL) * time.Hour
		if err := s.sessions.SetSession(ctx, sessionID, session, ttl); err == nil {
			creds.SessionID = sessionID
		}
	}

	return creds, nil
}

func (s *authService) generateToken(user *repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"isGuest": user.IsGuest,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.JWTExpiry) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
