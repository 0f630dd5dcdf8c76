package service

import (
	"context"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/users/repository"
	"backoffice_portal_backend/internal/users/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

// Service provides business logic for users and roles.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new users service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetProfile returns the profile of the given user.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// ListUsers returns all users for the admin view.
func (s *Service) ListUsers(ctx context.Context) ([]transport.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]transport.UserResponse, 0, len(users))
	for _, user := range users {
		results = append(results, toUserResponse(user))
	}
	return results, nil
}

// GetUser returns a single user for the admin view.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	return s.GetProfile(ctx, userID)
}

// CreateRole registers a role name. Only names from the closed role set
// are accepted so the permission table stays authoritative.
func (s *Service) CreateRole(ctx context.Context, name string) (transport.RoleResponse, error) {
	role, ok := rbac.Parse(name)
	if !ok {
		return transport.RoleResponse{}, apperr.Validation("unknown role: " + name)
	}

	created, err := s.repo.CreateRole(ctx, string(role))
	if err != nil {
		return transport.RoleResponse{}, err
	}

	s.log.Info("role created", "role", created.Name)
	return transport.RoleResponse{ID: created.ID.String(), Name: created.Name}, nil
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]transport.RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]transport.RoleResponse, 0, len(roles))
	for _, role := range roles {
		results = append(results, transport.RoleResponse{ID: role.ID.String(), Name: role.Name})
	}
	return results, nil
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.RoleName,
		Gender:      user.Gender,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		CreatedAt:   user.CreatedAt,
	}
}
