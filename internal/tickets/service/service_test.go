package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/internal/tickets/repository"
	"backoffice_portal_backend/internal/tickets/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

type fakeRepo struct {
	csr  map[uuid.UUID]*repository.CsrTicket
	user map[uuid.UUID]*repository.UserTicket
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		csr:  make(map[uuid.UUID]*repository.CsrTicket),
		user: make(map[uuid.UUID]*repository.UserTicket),
	}
}

func (f *fakeRepo) CreateCsr(_ context.Context, params repository.CreateCsrTicketParams) (repository.CsrTicket, error) {
	ticket := repository.CsrTicket{
		ID:             uuid.New(),
		OrderNumber:    params.OrderNumber,
		Problem:        params.Problem,
		Fees:           params.Fees,
		Procedure:      params.Procedure,
		Condition:      params.Condition,
		CreatedBy:      params.CreatedBy,
		Status:         repository.StatusPending,
		AttendedStatus: repository.AttendedStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	f.csr[ticket.ID] = &ticket
	return ticket, nil
}

func (f *fakeRepo) ListCsr(context.Context) ([]repository.CsrTicket, error) {
	out := make([]repository.CsrTicket, 0, len(f.csr))
	for _, t := range f.csr {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeRepo) GetCsrByID(_ context.Context, id uuid.UUID) (repository.CsrTicket, error) {
	t, ok := f.csr[id]
	if !ok {
		return repository.CsrTicket{}, apperr.NotFound("ticket not found")
	}
	return *t, nil
}

func (f *fakeRepo) CompletePending(_ context.Context, id uuid.UUID) (repository.CsrTicket, error) {
	t, ok := f.csr[id]
	if !ok {
		return repository.CsrTicket{}, apperr.NotFound("ticket not found")
	}
	if t.Status != repository.StatusPending {
		return repository.CsrTicket{}, apperr.Conflict("ticket is not pending")
	}
	t.Status = repository.StatusCompleted
	return *t, nil
}

func (f *fakeRepo) Attend(_ context.Context, id uuid.UUID, params repository.AttendParams) (repository.CsrTicket, error) {
	t, ok := f.csr[id]
	if !ok {
		return repository.CsrTicket{}, apperr.NotFound("ticket not found")
	}
	if t.AttendedStatus == repository.AttendedStatusAttended {
		return repository.CsrTicket{}, apperr.Conflict("ticket already attended")
	}
	t.AttendedStatus = repository.AttendedStatusAttended
	t.AttendedBy = &params.AttendedBy
	t.Status = repository.StatusCompleted
	if params.NewProduct != nil {
		t.NewProduct = params.NewProduct
	}
	if params.Qty != nil {
		t.Qty = params.Qty
	}
	if params.TrackingNo != nil {
		t.TrackingNo = params.TrackingNo
	}
	return *t, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, params repository.CreateUserTicketParams) (repository.UserTicket, error) {
	ticket := repository.UserTicket{
		ID:          uuid.New(),
		Email:       params.Email,
		PhoneNumber: params.PhoneNumber,
		OrderNumber: params.OrderNumber,
		Problem:     params.Problem,
		CreatedAt:   time.Now(),
	}
	f.user[ticket.ID] = &ticket
	return ticket, nil
}

func (f *fakeRepo) ListUser(context.Context) ([]repository.UserTicket, error) {
	out := make([]repository.UserTicket, 0, len(f.user))
	for _, t := range f.user {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeRepo) ConvertUserTicket(ctx context.Context, userTicketID uuid.UUID, params repository.ConvertParams) (repository.CsrTicket, error) {
	source, ok := f.user[userTicketID]
	if !ok {
		return repository.CsrTicket{}, apperr.NotFound("user ticket not found")
	}
	ticket, err := f.CreateCsr(ctx, repository.CreateCsrTicketParams{
		OrderNumber: source.OrderNumber,
		Problem:     source.Problem,
		Fees:        params.Fees,
		Procedure:   params.Procedure,
		Condition:   params.Condition,
		CreatedBy:   params.CreatedBy,
	})
	if err != nil {
		return repository.CsrTicket{}, err
	}
	delete(f.user, userTicketID)
	return ticket, nil
}

func (f *fakeRepo) CountCsrByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, t := range f.csr {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountCsrByAttended(_ context.Context, attendedStatus string) (int64, error) {
	var n int64
	for _, t := range f.csr {
		if t.AttendedStatus == attendedStatus {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountUser(context.Context) (int64, error) {
	return int64(len(f.user)), nil
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func seedCsr(t *testing.T, svc *Service, createdBy uuid.UUID) transport.CsrTicketResponse {
	t.Helper()
	ticket, err := svc.CreateCsr(context.Background(), createdBy, transport.CreateCsrTicketRequest{
		OrderNumber: "ORD-1001",
		Problem:     "damaged package",
	})
	if err != nil {
		t.Fatalf("seed csr ticket: %v", err)
	}
	return ticket
}

func TestCompletePendingIsOneWay(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &captureBus{}, logger.New("test"))
	ticket := seedCsr(t, svc, uuid.New())

	updated, err := svc.CompletePending(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("CompletePending: %v", err)
	}
	if updated.Status != repository.StatusCompleted {
		t.Errorf("status = %q, want completed", updated.Status)
	}

	_, err = svc.CompletePending(context.Background(), ticket.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second complete err = %v, want conflict", err)
	}

	_, err = svc.CompletePending(context.Background(), uuid.New().String())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing ticket err = %v, want not found", err)
	}
}

func TestAttendIsOneWay(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, logger.New("test"))
	ticket := seedCsr(t, svc, uuid.New())

	csrLead := uuid.New()
	tracking := "TRK-42"
	qty := 3
	attended, err := svc.Attend(context.Background(), csrLead, ticket.ID, transport.AttendTicketRequest{
		TrackingNo: &tracking,
		Qty:        &qty,
	})
	if err != nil {
		t.Fatalf("Attend: %v", err)
	}
	if attended.AttendedStatus != repository.AttendedStatusAttended {
		t.Errorf("attended status = %q, want attended", attended.AttendedStatus)
	}
	if attended.Status != repository.StatusCompleted {
		t.Errorf("status = %q, want completed", attended.Status)
	}
	if attended.AttendedBy == nil || *attended.AttendedBy != csrLead.String() {
		t.Errorf("attendedBy = %v, want %s", attended.AttendedBy, csrLead)
	}
	if attended.TrackingNo == nil || *attended.TrackingNo != tracking {
		t.Errorf("trackingNo = %v, want %q", attended.TrackingNo, tracking)
	}

	_, err = svc.Attend(context.Background(), csrLead, ticket.ID, transport.AttendTicketRequest{})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second attend err = %v, want conflict", err)
	}

	_, err = svc.Attend(context.Background(), csrLead, uuid.New().String(), transport.AttendTicketRequest{})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing ticket err = %v, want not found", err)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published = %d events, want 1", len(bus.published))
	}
	if _, ok := bus.published[0].(events.TicketAttended); !ok {
		t.Errorf("published %T, want TicketAttended", bus.published[0])
	}
}

func TestConvertCopiesAndDeletesSource(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, logger.New("test"))

	userTicket, err := svc.CreateUserTicket(context.Background(), transport.CreateUserTicketRequest{
		Email:       "customer@example.com",
		PhoneNumber: "+923001234567",
		OrderNumber: "ORD-9",
		Problem:     "wrong item delivered",
	})
	if err != nil {
		t.Fatalf("CreateUserTicket: %v", err)
	}

	caller := uuid.New()
	fees := "1500"
	converted, err := svc.Convert(context.Background(), caller, userTicket.ID, transport.ConvertTicketRequest{
		Fees: &fees,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if converted.OrderNumber != "ORD-9" || converted.Problem != "wrong item delivered" {
		t.Errorf("converted ticket did not copy source fields: %+v", converted)
	}
	if converted.Fees == nil || *converted.Fees != fees {
		t.Errorf("fees = %v, want %q", converted.Fees, fees)
	}
	if converted.CreatedBy != caller.String() {
		t.Errorf("createdBy = %s, want caller %s", converted.CreatedBy, caller)
	}

	if len(repo.user) != 0 {
		t.Errorf("user tickets remaining = %d, want 0", len(repo.user))
	}

	// one UserTicketCreated from submission, one UserTicketConverted
	if len(bus.published) != 2 {
		t.Fatalf("published = %d events, want 2", len(bus.published))
	}
	evt, ok := bus.published[1].(events.UserTicketConverted)
	if !ok {
		t.Fatalf("published %T, want UserTicketConverted", bus.published[1])
	}
	if evt.CsrTicketID.String() != converted.ID || evt.ConvertedBy != caller {
		t.Errorf("unexpected event %+v", evt)
	}

	_, err = svc.Convert(context.Background(), caller, userTicket.ID, transport.ConvertTicketRequest{})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("second convert err = %v, want not found", err)
	}
}

func TestCounts(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &captureBus{}, logger.New("test"))

	a := seedCsr(t, svc, uuid.New())
	seedCsr(t, svc, uuid.New())
	if _, err := svc.Attend(context.Background(), uuid.New(), a.ID, transport.AttendTicketRequest{}); err != nil {
		t.Fatalf("Attend: %v", err)
	}
	if _, err := svc.CreateUserTicket(context.Background(), transport.CreateUserTicketRequest{
		Email: "c@example.com", PhoneNumber: "+92300000", OrderNumber: "ORD-2", Problem: "late",
	}); err != nil {
		t.Fatalf("CreateUserTicket: %v", err)
	}

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := transport.TicketCountsResponse{
		Pending: 1, Completed: 1, Attended: 1, Unattended: 1, UserTickets: 1,
	}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
}
