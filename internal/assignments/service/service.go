package service

import (
	"context"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/assignments/repository"
	"backoffice_portal_backend/internal/assignments/transport"
	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

// Service implements lead assignment workflows.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new assignments service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Assign hands a lead to a user and notifies the assignee. A lead that is
// already in the Assigned status cannot be assigned again.
func (s *Service) Assign(ctx context.Context, assignedBy uuid.UUID, req transport.AssignLeadRequest) (transport.AssignmentResponse, error) {
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return transport.AssignmentResponse{}, apperr.Validation("invalid lead id")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return transport.AssignmentResponse{}, apperr.Validation("invalid user id")
	}

	result, err := s.repo.Assign(ctx, leadID, userID, assignedBy, req.Remarks)
	if err != nil {
		return transport.AssignmentResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadAssigned{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       result.Assignment.LeadID,
		LeadName:     result.LeadName,
		AssigneeID:   result.Assignment.UserID,
		AssignedByID: assignedBy,
	})

	s.log.Info("lead assigned",
		"lead_id", result.Assignment.LeadID,
		"assignee_id", result.Assignment.UserID,
		"assigned_by", assignedBy)

	return toAssignmentResponse(result.Assignment), nil
}

// History returns the assignment trail of a lead, newest first.
func (s *Service) History(ctx context.Context, leadID string) ([]transport.AssignmentResponse, error) {
	id, err := uuid.Parse(leadID)
	if err != nil {
		return nil, apperr.Validation("invalid lead id")
	}
	assignments, err := s.repo.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]transport.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResponse(a))
	}
	return out, nil
}

func toAssignmentResponse(a repository.Assignment) transport.AssignmentResponse {
	return transport.AssignmentResponse{
		ID:         a.ID.String(),
		LeadID:     a.LeadID.String(),
		UserID:     a.UserID.String(),
		AssignedBy: a.AssignedBy.String(),
		Remarks:    a.Remarks,
		AssignedAt: a.AssignedAt,
	}
}
