package service

import (
	"context"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/auth/password"
	"backoffice_portal_backend/internal/vendors/repository"
	"backoffice_portal_backend/internal/vendors/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/phone"
)

// Service implements vendor client onboarding and order workflows.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new vendors service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// OnboardClient creates the client account and their first order in one
// transaction. The caller becomes the order's salesperson.
func (s *Service) OnboardClient(ctx context.Context, salesPersonID uuid.UUID, req transport.OnboardClientRequest) (transport.OrderResponse, error) {
	countryID, err := uuid.Parse(req.CountryID)
	if err != nil {
		return transport.OrderResponse{}, apperr.Validation("invalid country id")
	}
	visaTypeID, err := uuid.Parse(req.VisaTypeID)
	if err != nil {
		return transport.OrderResponse{}, apperr.Validation("invalid visa type id")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	phoneNumber := req.PhoneNumber
	if phoneNumber != nil {
		normalized := phone.NormalizeE164(*phoneNumber)
		phoneNumber = &normalized
	}

	order, err := s.repo.Onboard(ctx, repository.OnboardParams{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Gender:         req.Gender,
		PhoneNumber:    phoneNumber,
		Address:        req.Address,
		CountryID:      countryID,
		VisaTypeID:     visaTypeID,
		InitialPayment: req.InitialPayment,
		FinalPayment:   req.FinalPayment,
		SalesPersonID:  salesPersonID,
	})
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.Info("client onboarded", "order_id", order.ID, "sales_person_id", salesPersonID)
	return toOrderResponse(order), nil
}

// ListClients returns the caller's client orders.
func (s *Service) ListClients(ctx context.Context, salesPersonID uuid.UUID) ([]transport.ClientOrderResponse, error) {
	orders, err := s.repo.ListBySalesPerson(ctx, salesPersonID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ClientOrderResponse, 0, len(orders))
	for _, co := range orders {
		out = append(out, transport.ClientOrderResponse{
			Order:       toOrderResponse(co.Order),
			ClientName:  co.ClientName,
			ClientEmail: co.ClientEmail,
			ClientPhone: co.ClientPhone,
		})
	}
	return out, nil
}

// UpdateOrderStatus changes an order's status; only the order's
// salesperson may do so.
func (s *Service) UpdateOrderStatus(ctx context.Context, salesPersonID uuid.UUID, req transport.UpdateOrderStatusRequest) (transport.OrderResponse, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return transport.OrderResponse{}, apperr.Validation("invalid order id")
	}
	order, err := s.repo.UpdateStatus(ctx, orderID, salesPersonID, req.Status)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

func toOrderResponse(o repository.Order) transport.OrderResponse {
	return transport.OrderResponse{
		ID:             o.ID.String(),
		CountryID:      o.CountryID.String(),
		VisaTypeID:     o.VisaTypeID.String(),
		ClientID:       o.ClientID.String(),
		SalesPersonID:  o.SalesPersonID.String(),
		InitialPayment: o.InitialPayment,
		FinalPayment:   o.FinalPayment,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
