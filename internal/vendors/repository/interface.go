package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for vendor client onboarding and orders.
type Repository interface {
	Onboard(ctx context.Context, params OnboardParams) (Order, error)
	ListBySalesPerson(ctx context.Context, salesPersonID uuid.UUID) ([]ClientOrder, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (Order, error)
	UpdateStatus(ctx context.Context, orderID, salesPersonID uuid.UUID, status string) (Order, error)
}
