package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/assignments/repository"
	"backoffice_portal_backend/internal/assignments/transport"
	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

type fakeLead struct {
	name   string
	status string
}

type fakeRepo struct {
	leads       map[uuid.UUID]*fakeLead
	users       map[uuid.UUID]bool
	assignments []repository.Assignment
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leads: make(map[uuid.UUID]*fakeLead),
		users: make(map[uuid.UUID]bool),
	}
}

func (f *fakeRepo) Assign(_ context.Context, leadID, userID, assignedBy uuid.UUID, remarks *string) (repository.AssignResult, error) {
	lead, ok := f.leads[leadID]
	if !ok {
		return repository.AssignResult{}, apperr.NotFound("lead not found")
	}
	if !f.users[userID] {
		return repository.AssignResult{}, apperr.NotFound("user not found")
	}
	if lead.status == "Assigned" {
		return repository.AssignResult{}, apperr.Conflict("lead already assigned")
	}
	lead.status = "Assigned"
	assignment := repository.Assignment{
		ID:         uuid.New(),
		LeadID:     leadID,
		UserID:     userID,
		AssignedBy: assignedBy,
		Remarks:    remarks,
		AssignedAt: time.Now(),
	}
	f.assignments = append(f.assignments, assignment)
	return repository.AssignResult{Assignment: assignment, LeadName: lead.name}, nil
}

func (f *fakeRepo) ListByLead(_ context.Context, leadID uuid.UUID) ([]repository.Assignment, error) {
	out := make([]repository.Assignment, 0)
	for i := len(f.assignments) - 1; i >= 0; i-- {
		if f.assignments[i].LeadID == leadID {
			out = append(out, f.assignments[i])
		}
	}
	return out, nil
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

func TestAssign(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, logger.New("test"))

	leadID := uuid.New()
	userID := uuid.New()
	adminID := uuid.New()
	repo.leads[leadID] = &fakeLead{name: "Adeel Khan", status: "Pending"}
	repo.users[userID] = true

	t.Run("assigns and flips status", func(t *testing.T) {
		result, err := svc.Assign(context.Background(), adminID, transport.AssignLeadRequest{
			LeadID: leadID.String(),
			UserID: userID.String(),
		})
		if err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if result.LeadID != leadID.String() || result.UserID != userID.String() {
			t.Errorf("unexpected assignment %+v", result)
		}
		if repo.leads[leadID].status != "Assigned" {
			t.Errorf("lead status = %q, want Assigned", repo.leads[leadID].status)
		}
		if len(repo.assignments) != 1 {
			t.Fatalf("assignment rows = %d, want 1", len(repo.assignments))
		}
	})

	t.Run("rejects second assign while assigned", func(t *testing.T) {
		_, err := svc.Assign(context.Background(), adminID, transport.AssignLeadRequest{
			LeadID: leadID.String(),
			UserID: userID.String(),
		})
		if !apperr.Is(err, apperr.KindConflict) {
			t.Fatalf("err = %v, want conflict", err)
		}
		if len(repo.assignments) != 1 {
			t.Errorf("assignment rows = %d, want 1", len(repo.assignments))
		}
	})

	t.Run("publishes LeadAssigned once", func(t *testing.T) {
		if len(bus.published) != 1 {
			t.Fatalf("published = %d events, want 1", len(bus.published))
		}
		evt, ok := bus.published[0].(events.LeadAssigned)
		if !ok {
			t.Fatalf("published %T, want LeadAssigned", bus.published[0])
		}
		if evt.AssigneeID != userID || evt.LeadName != "Adeel Khan" {
			t.Errorf("unexpected event %+v", evt)
		}
	})
}

func TestAssignMissingLead(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &captureBus{}, logger.New("test"))

	userID := uuid.New()
	repo.users[userID] = true

	_, err := svc.Assign(context.Background(), uuid.New(), transport.AssignLeadRequest{
		LeadID: uuid.New().String(),
		UserID: userID.String(),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAssignMissingUser(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &captureBus{}, logger.New("test"))

	leadID := uuid.New()
	repo.leads[leadID] = &fakeLead{name: "Sana", status: "Pending"}

	_, err := svc.Assign(context.Background(), uuid.New(), transport.AssignLeadRequest{
		LeadID: leadID.String(),
		UserID: uuid.New().String(),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAssignInvalidIDs(t *testing.T) {
	svc := New(newFakeRepo(), &captureBus{}, logger.New("test"))

	_, err := svc.Assign(context.Background(), uuid.New(), transport.AssignLeadRequest{
		LeadID: "not-a-uuid",
		UserID: uuid.New().String(),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
