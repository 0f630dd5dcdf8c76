package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for authentication data operations.
// This allows services to depend on an abstraction rather than concrete implementation,
// improving testability and modularity.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
	CountByRole(ctx context.Context, roleName string) (int, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error

	CreateOTP(ctx context.Context, userID uuid.UUID, otpHash string, expiresAt time.Time) error
	ConsumeOTP(ctx context.Context, userID uuid.UUID, otpHash string) (time.Time, error)
}
