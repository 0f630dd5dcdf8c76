package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/internal/tickets/repository"
	"backoffice_portal_backend/internal/tickets/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

// Service implements CSR and customer ticket workflows.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new tickets service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateCsr opens a CSR ticket. The creator comes from the access token.
func (s *Service) CreateCsr(ctx context.Context, createdBy uuid.UUID, req transport.CreateCsrTicketRequest) (transport.CsrTicketResponse, error) {
	ticket, err := s.repo.CreateCsr(ctx, repository.CreateCsrTicketParams{
		OrderNumber: req.OrderNumber,
		Problem:     req.Problem,
		Fees:        req.Fees,
		Procedure:   req.Procedure,
		Condition:   req.Condition,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return transport.CsrTicketResponse{}, err
	}
	return toCsrResponse(ticket), nil
}

// ListCsr returns all CSR tickets, newest first.
func (s *Service) ListCsr(ctx context.Context) ([]transport.CsrTicketResponse, error) {
	tickets, err := s.repo.ListCsr(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.CsrTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toCsrResponse(t))
	}
	return out, nil
}

// CompletePending moves a pending CSR ticket to completed. Any other
// starting state is a conflict.
func (s *Service) CompletePending(ctx context.Context, ticketID string) (transport.CsrTicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return transport.CsrTicketResponse{}, apperr.Validation("invalid ticket id")
	}
	ticket, err := s.repo.CompletePending(ctx, id)
	if err != nil {
		return transport.CsrTicketResponse{}, err
	}
	return toCsrResponse(ticket), nil
}

// Attend marks a CSR ticket as attended by the caller and merges any
// fulfillment fields supplied with the request.
func (s *Service) Attend(ctx context.Context, attendedBy uuid.UUID, ticketID string, req transport.AttendTicketRequest) (transport.CsrTicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return transport.CsrTicketResponse{}, apperr.Validation("invalid ticket id")
	}

	shippingCompanyID, err := parseOptionalUUID(req.ShippingCompanyID, "invalid shipping company id")
	if err != nil {
		return transport.CsrTicketResponse{}, err
	}
	driverID, err := parseOptionalUUID(req.DriverID, "invalid driver id")
	if err != nil {
		return transport.CsrTicketResponse{}, err
	}

	ticket, err := s.repo.Attend(ctx, id, repository.AttendParams{
		AttendedBy:        attendedBy,
		NewProduct:        req.NewProduct,
		AttemptDate:       req.AttemptDate,
		Qty:               req.Qty,
		Pkgs:              req.Pkgs,
		ShippingCompanyID: shippingCompanyID,
		TrackingNo:        req.TrackingNo,
		DriverID:          driverID,
		ShippedDate:       req.ShippedDate,
		Notes:             req.Notes,
	})
	if err != nil {
		return transport.CsrTicketResponse{}, err
	}

	s.bus.Publish(ctx, events.TicketAttended{
		BaseEvent:  events.NewBaseEvent(),
		TicketID:   ticket.ID,
		AttendedBy: attendedBy,
	})

	return toCsrResponse(ticket), nil
}

// CreateUserTicket records a customer-submitted ticket and notifies the CSR
// lead team via the event bus.
func (s *Service) CreateUserTicket(ctx context.Context, req transport.CreateUserTicketRequest) (transport.UserTicketResponse, error) {
	ticket, err := s.repo.CreateUser(ctx, repository.CreateUserTicketParams{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		OrderNumber: req.OrderNumber,
		Problem:     req.Problem,
	})
	if err != nil {
		return transport.UserTicketResponse{}, err
	}

	s.bus.Publish(ctx, events.UserTicketCreated{
		BaseEvent:   events.NewBaseEvent(),
		TicketID:    ticket.ID,
		OrderNumber: ticket.OrderNumber,
	})

	return toUserResponse(ticket), nil
}

// ListUserTickets returns all customer-submitted tickets, newest first.
func (s *Service) ListUserTickets(ctx context.Context) ([]transport.UserTicketResponse, error) {
	tickets, err := s.repo.ListUser(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.UserTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toUserResponse(t))
	}
	return out, nil
}

// Convert generates a CSR ticket from a user ticket. The order number and
// problem are copied from the source; the employee field overrides the
// caller as creator when supplied. The source ticket is removed only after
// the CSR ticket exists.
func (s *Service) Convert(ctx context.Context, caller uuid.UUID, userTicketID string, req transport.ConvertTicketRequest) (transport.CsrTicketResponse, error) {
	id, err := uuid.Parse(userTicketID)
	if err != nil {
		return transport.CsrTicketResponse{}, apperr.Validation("invalid ticket id")
	}

	createdBy := caller
	if req.Employee != nil {
		employee, err := uuid.Parse(*req.Employee)
		if err != nil {
			return transport.CsrTicketResponse{}, apperr.Validation("invalid employee id")
		}
		createdBy = employee
	}

	ticket, err := s.repo.ConvertUserTicket(ctx, id, repository.ConvertParams{
		Fees:      req.Fees,
		Procedure: req.Procedure,
		Condition: req.Condition,
		CreatedBy: createdBy,
	})
	if err != nil {
		return transport.CsrTicketResponse{}, err
	}

	s.bus.Publish(ctx, events.UserTicketConverted{
		BaseEvent:    events.NewBaseEvent(),
		UserTicketID: id,
		CsrTicketID:  ticket.ID,
		ConvertedBy:  caller,
	})

	s.log.Info("user ticket converted", "user_ticket_id", id, "csr_ticket_id", ticket.ID)
	return toCsrResponse(ticket), nil
}

// Counts runs the five stat queries in parallel.
func (s *Service) Counts(ctx context.Context) (transport.TicketCountsResponse, error) {
	var counts transport.TicketCountsResponse
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		counts.Pending, err = s.repo.CountCsrByStatus(ctx, repository.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		counts.Completed, err = s.repo.CountCsrByStatus(ctx, repository.StatusCompleted)
		return err
	})
	g.Go(func() (err error) {
		counts.Attended, err = s.repo.CountCsrByAttended(ctx, repository.AttendedStatusAttended)
		return err
	})
	g.Go(func() (err error) {
		counts.Unattended, err = s.repo.CountCsrByAttended(ctx, repository.AttendedStatusPending)
		return err
	})
	g.Go(func() (err error) {
		counts.UserTickets, err = s.repo.CountUser(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return transport.TicketCountsResponse{}, err
	}
	return counts, nil
}

func parseOptionalUUID(s *string, message string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apperr.Validation(message)
	}
	return &id, nil
}

func toCsrResponse(t repository.CsrTicket) transport.CsrTicketResponse {
	return transport.CsrTicketResponse{
		ID:                t.ID.String(),
		OrderNumber:       t.OrderNumber,
		Problem:           t.Problem,
		Fees:              t.Fees,
		Procedure:         t.Procedure,
		Condition:         t.Condition,
		CreatedBy:         t.CreatedBy.String(),
		Status:            t.Status,
		AttendedStatus:    t.AttendedStatus,
		AttendedBy:        uuidString(t.AttendedBy),
		NewProduct:        t.NewProduct,
		AttemptDate:       t.AttemptDate,
		Qty:               t.Qty,
		Pkgs:              t.Pkgs,
		ShippingCompanyID: uuidString(t.ShippingCompanyID),
		TrackingNo:        t.TrackingNo,
		DriverID:          uuidString(t.DriverID),
		ShippedDate:       t.ShippedDate,
		Notes:             t.Notes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toUserResponse(t repository.UserTicket) transport.UserTicketResponse {
	return transport.UserTicketResponse{
		ID:          t.ID.String(),
		Email:       t.Email,
		PhoneNumber: t.PhoneNumber,
		OrderNumber: t.OrderNumber,
		Problem:     t.Problem,
		CreatedAt:   t.CreatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
