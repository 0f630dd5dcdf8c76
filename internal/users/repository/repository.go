package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice_portal_backend/platform/apperr"
)

const (
	userNotFoundMessage = "user not found"
	uniqueViolation     = "23505"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// User is an account row joined with its role name.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Gender      *string
	PhoneNumber *string
	Address     *string
	RoleName    string
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role is a row of the roles table.
type Role struct {
	ID   uuid.UUID
	Name string
}

const userColumns = `u.id, u.username, u.email, u.gender, u.phone_number, u.address, r.name, u.created_by, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Gender,
		&user.PhoneNumber, &user.Address, &user.RoleName,
		&user.CreatedBy, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

// GetByID retrieves a user by ID.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// List returns all users, newest first.
func (r *Repo) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id ORDER BY u.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}

// CreateRole inserts a role name.
func (r *Repo) CreateRole(ctx context.Context, name string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name) VALUES ($1) RETURNING id, name
	`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Role{}, apperr.Conflict("role already exists")
		}
		return Role{}, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

// ListRoles returns all roles ordered by name.
func (r *Repo) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]Role, 0)
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return roles, nil
}
