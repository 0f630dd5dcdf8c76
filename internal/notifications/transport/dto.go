package transport

import "time"

// CreateNotificationRequest manually creates a notification for a user or a
// role-wide broadcast.
type CreateNotificationRequest struct {
	Audience string  `json:"audience" validate:"required,oneof=user role"`
	UserID   *string `json:"userId,omitempty" validate:"omitempty,uuid"`
	Role     *string `json:"role,omitempty"`
	Message  string  `json:"message" validate:"required"`
	LeadID   *string `json:"leadId,omitempty" validate:"omitempty,uuid"`
	TicketID *string `json:"ticketId,omitempty" validate:"omitempty,uuid"`
	Category string  `json:"category,omitempty"`
}

// NotificationResponse is the API shape of a notification.
type NotificationResponse struct {
	ID        string     `json:"id"`
	Audience  string     `json:"audience"`
	UserID    *string    `json:"userId,omitempty"`
	Role      *string    `json:"role,omitempty"`
	Message   string     `json:"message"`
	LeadID    *string    `json:"leadId,omitempty"`
	TicketID  *string    `json:"ticketId,omitempty"`
	Category  string     `json:"category,omitempty"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
