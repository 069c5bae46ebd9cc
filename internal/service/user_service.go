package service

import (
	"context"

	"github.com/encikiz/planr-backend/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*repository.User, error)
	GetByID(ctx context.Context, userID string) (*repository.User, error)
	List(ctx context.Context) ([]*repository.User, error)
	Update(ctx context.Context, userID string, req *UpdateUserRequest) (*repository.User, error)
	Delete(ctx context.Context, userID string) error
}

type CreateUserRequest struct {
	Name       string
	Email      *string
	Role       string
	Department *string
	Avatar     *string
	CreatedBy  *string
}

type UpdateUserRequest struct {
	Name       *string
	Email      *string
	Role       *string
	Department *string
	Avatar     *string
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*repository.User, error) {
	if req.Email != nil {
		existing, err := s.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUserExists
		}
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	user := &repository.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		Department: req.Department,
		Avatar:     req.Avatar,
		CreatedBy:  req.CreatedBy,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*repository.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) Update(ctx context.Context, userID string, req *UpdateUserRequest) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.userRepo.Delete(ctx, userID)
}
