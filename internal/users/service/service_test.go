package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/users/repository"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

type fakeRepo struct {
	users []repository.User
	roles []repository.Role
}

var _ repository.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetByID(_ context.Context, userID uuid.UUID) (repository.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeRepo) List(context.Context) ([]repository.User, error) {
	return f.users, nil
}

func (f *fakeRepo) CreateRole(_ context.Context, name string) (repository.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return repository.Role{}, apperr.Conflict("role already exists")
		}
	}
	role := repository.Role{ID: uuid.New(), Name: name}
	f.roles = append(f.roles, role)
	return role, nil
}

func (f *fakeRepo) ListRoles(context.Context) ([]repository.Role, error) {
	return f.roles, nil
}

func newTestService(repo *fakeRepo) *Service {
	return New(repo, logger.New("development"))
}

func TestGetProfile(t *testing.T) {
	user := repository.User{ID: uuid.New(), Username: "jdoe", Email: "jdoe@example.com", RoleName: "salesagent"}
	svc := newTestService(&fakeRepo{users: []repository.User{user}})

	t.Run("returns the caller's profile", func(t *testing.T) {
		got, err := svc.GetProfile(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if got.ID != user.ID.String() || got.Email != user.Email || got.Role != "salesagent" {
			t.Errorf("unexpected profile: %+v", got)
		}
	})

	t.Run("unknown user is a not-found error", func(t *testing.T) {
		_, err := svc.GetProfile(context.Background(), uuid.New())
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestCreateRole(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	t.Run("accepts a known role name", func(t *testing.T) {
		role, err := svc.CreateRole(context.Background(), "CsrLead")
		if err != nil {
			t.Fatalf("CreateRole: %v", err)
		}
		if role.Name != "csrlead" {
			t.Errorf("expected canonical role name csrlead, got %q", role.Name)
		}
	})

	t.Run("rejects names outside the role set", func(t *testing.T) {
		_, err := svc.CreateRole(context.Background(), "warehouse")
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate role conflicts", func(t *testing.T) {
		if _, err := svc.CreateRole(context.Background(), "admin"); err != nil {
			t.Fatalf("first CreateRole: %v", err)
		}
		_, err := svc.CreateRole(context.Background(), "admin")
		if !apperr.Is(err, apperr.KindConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestListUsers(t *testing.T) {
	svc := newTestService(&fakeRepo{users: []repository.User{
		{ID: uuid.New(), Username: "a", Email: "a@example.com", RoleName: "admin"},
		{ID: uuid.New(), Username: "b", Email: "b@example.com", RoleName: "cro"},
	}})

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
