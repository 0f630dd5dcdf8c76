package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/internal/notifications/repository"
	"backoffice_portal_backend/internal/notifications/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

// Service implements notification delivery and read tracking.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new notifications service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListUnread returns the caller's unread notifications: direct rows plus
// broadcasts for the caller's role.
func (s *Service) ListUnread(ctx context.Context, userID uuid.UUID, role string) ([]transport.NotificationResponse, error) {
	notifications, err := s.repo.ListUnread(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	out := make([]transport.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toResponse(n))
	}
	return out, nil
}

// MarkRead flags a notification as read for the caller. Re-reading an
// already-read notification succeeds.
func (s *Service) MarkRead(ctx context.Context, notificationID string, userID uuid.UUID, role string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return apperr.Validation("invalid notification id")
	}
	return s.repo.MarkRead(ctx, id, userID, role)
}

// Create manually inserts a notification. Role broadcasts must target a
// known role; direct notifications must name a user.
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, req transport.CreateNotificationRequest) (transport.NotificationResponse, error) {
	params := repository.CreateParams{
		Audience:  req.Audience,
		Message:   req.Message,
		Category:  req.Category,
		CreatedBy: &createdBy,
	}

	switch req.Audience {
	case repository.AudienceUser:
		if req.UserID == nil {
			return transport.NotificationResponse{}, apperr.Validation("userId is required for audience user")
		}
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return transport.NotificationResponse{}, apperr.Validation("invalid user id")
		}
		params.UserID = &userID
	case repository.AudienceRole:
		if req.Role == nil {
			return transport.NotificationResponse{}, apperr.Validation("role is required for audience role")
		}
		role, ok := rbac.Parse(*req.Role)
		if !ok {
			return transport.NotificationResponse{}, apperr.Validation(fmt.Sprintf("unknown role %q", *req.Role))
		}
		roleName := string(role)
		params.Role = &roleName
	}

	if req.LeadID != nil {
		leadID, err := uuid.Parse(*req.LeadID)
		if err != nil {
			return transport.NotificationResponse{}, apperr.Validation("invalid lead id")
		}
		params.LeadID = &leadID
	}
	if req.TicketID != nil {
		ticketID, err := uuid.Parse(*req.TicketID)
		if err != nil {
			return transport.NotificationResponse{}, apperr.Validation("invalid ticket id")
		}
		params.TicketID = &ticketID
	}

	notification, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.NotificationResponse{}, err
	}
	return toResponse(notification), nil
}

// RegisterEventHandlers subscribes the notification fan-out to the domain
// events published by the other modules.
func (s *Service) RegisterEventHandlers(bus events.Bus) {
	bus.Subscribe(events.UserTicketCreated{}.EventName(), events.HandlerFunc(s.onUserTicketCreated))
	bus.Subscribe(events.LeadAssigned{}.EventName(), events.HandlerFunc(s.onLeadAssigned))
	bus.Subscribe(events.UserTicketConverted{}.EventName(), events.HandlerFunc(s.onUserTicketConverted))
	bus.Subscribe(events.FollowUpOverdue{}.EventName(), events.HandlerFunc(s.onFollowUpOverdue))
}

// onUserTicketCreated broadcasts new customer tickets to the CSR lead team.
func (s *Service) onUserTicketCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.UserTicketCreated)
	if !ok {
		return nil
	}
	role := string(rbac.RoleCsrLead)
	_, err := s.repo.Create(ctx, repository.CreateParams{
		Audience: repository.AudienceRole,
		Role:     &role,
		Message:  fmt.Sprintf("New customer ticket for order %s", e.OrderNumber),
		TicketID: &e.TicketID,
		Category: "ticket_created",
	})
	return err
}

// onLeadAssigned addresses the assignee directly.
func (s *Service) onLeadAssigned(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadAssigned)
	if !ok {
		return nil
	}
	_, err := s.repo.Create(ctx, repository.CreateParams{
		Audience:  repository.AudienceUser,
		UserID:    &e.AssigneeID,
		Message:   fmt.Sprintf("Lead %s has been assigned to you", e.LeadName),
		LeadID:    &e.LeadID,
		CreatedBy: &e.AssignedByID,
		Category:  "lead_assigned",
	})
	return err
}

// onUserTicketConverted records a single notification referencing the new
// CSR ticket.
func (s *Service) onUserTicketConverted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.UserTicketConverted)
	if !ok {
		return nil
	}
	role := string(rbac.RoleCsrLead)
	_, err := s.repo.Create(ctx, repository.CreateParams{
		Audience:  repository.AudienceRole,
		Role:      &role,
		Message:   "A customer ticket was converted to a CSR ticket",
		TicketID:  &e.CsrTicketID,
		CreatedBy: &e.ConvertedBy,
		Category:  "ticket_converted",
	})
	return err
}

// onFollowUpOverdue inserts the dedup-guarded reminder for the assignee.
func (s *Service) onFollowUpOverdue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.FollowUpOverdue)
	if !ok {
		return nil
	}
	message := fmt.Sprintf("Follow-up overdue for lead %s", e.LeadName)
	return s.repo.CreateFollowUpReminder(ctx, e.AssigneeID, e.LeadID, message)
}

func toResponse(n repository.Notification) transport.NotificationResponse {
	return transport.NotificationResponse{
		ID:        n.ID.String(),
		Audience:  n.Audience,
		UserID:    uuidString(n.UserID),
		Role:      n.Role,
		Message:   n.Message,
		LeadID:    uuidString(n.LeadID),
		TicketID:  uuidString(n.TicketID),
		Category:  n.Category,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
