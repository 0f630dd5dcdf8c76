package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user and role data operations.
type Repository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	CreateRole(ctx context.Context, name string) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
}
