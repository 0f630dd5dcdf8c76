package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for lead data operations.
// This allows services to depend on an abstraction rather than concrete implementation,
// improving testability and modularity.
type Repository interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	CreateBatch(ctx context.Context, rows []CreateLeadParams) (int, []RowError)
	GetByID(ctx context.Context, leadID uuid.UUID) (Lead, error)
	List(ctx context.Context, scope Scope) ([]Lead, error)
	ListRemarketing(ctx context.Context, scope Scope) ([]Lead, error)
	Filter(ctx context.Context, scope Scope, params FilterParams) ([]Lead, error)
	Update(ctx context.Context, leadID uuid.UUID, params UpdateLeadParams) (Lead, error)
	SetQualifiedStatus(ctx context.Context, leadID uuid.UUID, qualifiedStatus string) (Lead, error)
	ToggleRemarketing(ctx context.Context, leadID uuid.UUID) (Lead, error)

	CountTotal(ctx context.Context, scope Scope) (int, error)
	CountRemarketing(ctx context.Context, scope Scope) (int, error)
	CountQualified(ctx context.Context, scope Scope) (int, error)
	CountUnqualified(ctx context.Context, scope Scope) (int, error)

	CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error)
	ListActivitiesByLead(ctx context.Context, leadID uuid.UUID) ([]Activity, error)
	ListActivitiesByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error)

	CreateDiscussion(ctx context.Context, leadID, userID uuid.UUID, message string) (Discussion, error)
	ListDiscussionsByLead(ctx context.Context, leadID uuid.UUID) ([]Discussion, error)
}
