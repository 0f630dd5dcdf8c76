package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/vendors/repository"
	"backoffice_portal_backend/internal/vendors/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

type fakeClient struct {
	id    uuid.UUID
	name  string
	email string
	phone *string
}

type fakeRepo struct {
	clients map[string]fakeClient
	orders  map[uuid.UUID]*repository.Order
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients: make(map[string]fakeClient),
		orders:  make(map[uuid.UUID]*repository.Order),
	}
}

func (f *fakeRepo) Onboard(_ context.Context, params repository.OnboardParams) (repository.Order, error) {
	if _, exists := f.clients[params.Email]; exists {
		return repository.Order{}, apperr.Conflict("a user with this email already exists")
	}
	client := fakeClient{
		id:    uuid.New(),
		name:  params.Username,
		email: params.Email,
		phone: params.PhoneNumber,
	}
	f.clients[params.Email] = client

	order := repository.Order{
		ID:             uuid.New(),
		CountryID:      params.CountryID,
		VisaTypeID:     params.VisaTypeID,
		ClientID:       client.id,
		SalesPersonID:  params.SalesPersonID,
		InitialPayment: params.InitialPayment,
		FinalPayment:   params.FinalPayment,
		Status:         repository.OrderStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	f.orders[order.ID] = &order
	return order, nil
}

func (f *fakeRepo) ListBySalesPerson(_ context.Context, salesPersonID uuid.UUID) ([]repository.ClientOrder, error) {
	out := make([]repository.ClientOrder, 0)
	for _, o := range f.orders {
		if o.SalesPersonID != salesPersonID {
			continue
		}
		var client fakeClient
		for _, c := range f.clients {
			if c.id == o.ClientID {
				client = c
			}
		}
		out = append(out, repository.ClientOrder{
			Order:       *o,
			ClientName:  client.name,
			ClientEmail: client.email,
			ClientPhone: client.phone,
		})
	}
	return out, nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, id uuid.UUID) (repository.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	return *o, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, orderID, salesPersonID uuid.UUID, status string) (repository.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	if o.SalesPersonID != salesPersonID {
		return repository.Order{}, apperr.Forbidden("only the order's salesperson can change its status")
	}
	o.Status = status
	return *o, nil
}

func onboardRequest() transport.OnboardClientRequest {
	return transport.OnboardClientRequest{
		Username:       "Hamza Client",
		Email:          "hamza@example.com",
		Password:       "correct-horse-battery",
		CountryID:      uuid.New().String(),
		VisaTypeID:     uuid.New().String(),
		InitialPayment: 500,
		FinalPayment:   1500,
	}
}

func TestOnboardClient(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("test"))
	vendor := uuid.New()

	order, err := svc.OnboardClient(context.Background(), vendor, onboardRequest())
	if err != nil {
		t.Fatalf("OnboardClient: %v", err)
	}
	if order.SalesPersonID != vendor.String() {
		t.Errorf("salesPersonId = %s, want caller %s", order.SalesPersonID, vendor)
	}
	if order.Status != repository.OrderStatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if len(repo.clients) != 1 {
		t.Errorf("clients = %d, want 1", len(repo.clients))
	}

	_, err = svc.OnboardClient(context.Background(), vendor, onboardRequest())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate email err = %v, want conflict", err)
	}
}

func TestListClientsScopedToCaller(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("test"))

	mine := uuid.New()
	theirs := uuid.New()
	if _, err := svc.OnboardClient(context.Background(), mine, onboardRequest()); err != nil {
		t.Fatalf("OnboardClient: %v", err)
	}
	other := onboardRequest()
	other.Email = "second@example.com"
	if _, err := svc.OnboardClient(context.Background(), theirs, other); err != nil {
		t.Fatalf("OnboardClient: %v", err)
	}

	clients, err := svc.ListClients(context.Background(), mine)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("clients = %d, want only the caller's", len(clients))
	}
	if clients[0].ClientEmail != "hamza@example.com" {
		t.Errorf("client email = %q", clients[0].ClientEmail)
	}
}

func TestUpdateOrderStatusOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("test"))

	owner := uuid.New()
	stranger := uuid.New()
	order, err := svc.OnboardClient(context.Background(), owner, onboardRequest())
	if err != nil {
		t.Fatalf("OnboardClient: %v", err)
	}

	_, err = svc.UpdateOrderStatus(context.Background(), stranger, transport.UpdateOrderStatusRequest{
		OrderID: order.ID,
		Status:  "completed",
	})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("stranger err = %v, want forbidden", err)
	}

	updated, err := svc.UpdateOrderStatus(context.Background(), owner, transport.UpdateOrderStatusRequest{
		OrderID: order.ID,
		Status:  "completed",
	})
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if updated.Status != "completed" {
		t.Errorf("status = %q, want completed", updated.Status)
	}

	_, err = svc.UpdateOrderStatus(context.Background(), owner, transport.UpdateOrderStatusRequest{
		OrderID: uuid.New().String(),
		Status:  "completed",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing order err = %v, want not found", err)
	}
}
