package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for lead assignments.
type Repository interface {
	Assign(ctx context.Context, leadID, userID, assignedBy uuid.UUID, remarks *string) (AssignResult, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]Assignment, error)
}
