package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for notifications.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Notification, error)
	CreateFollowUpReminder(ctx context.Context, userID, leadID uuid.UUID, message string) error
	ListUnread(ctx context.Context, userID uuid.UUID, role string) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID, role string) error
}
