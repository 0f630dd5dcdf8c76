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

const userNotFoundMessage = "user not found"

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// User is an account row joined with its role name.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Gender       *string
	PhoneNumber  *string
	Address      *string
	RoleName     string
	CreatedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserParams holds the fields for inserting a new user.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Gender       *string
	PhoneNumber  *string
	Address      *string
	RoleName     string
	CreatedBy    *uuid.UUID
}

const userColumns = `u.id, u.username, u.email, u.password_hash, u.gender, u.phone_number, u.address, r.name, u.created_by, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Gender, &user.PhoneNumber, &user.Address, &user.RoleName,
		&user.CreatedBy, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

// CreateUser inserts a user with the given role name.
func (r *Repo) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	query := `
		WITH inserted AS (
			INSERT INTO users (username, email, password_hash, gender, phone_number, address, role_id, created_by)
			SELECT $1, $2, $3, $4, $5, $6, roles.id, $8
			FROM roles WHERE roles.name = $7
			RETURNING *
		)
		SELECT u.id, u.username, u.email, u.password_hash, u.gender, u.phone_number, u.address, r.name, u.created_by, u.created_at, u.updated_at
		FROM inserted u JOIN roles r ON r.id = u.role_id`

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		params.Username, params.Email, params.PasswordHash,
		params.Gender, params.PhoneNumber, params.Address,
		params.RoleName, params.CreatedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.Validation("unknown role: " + params.RoleName)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("email or username already in use")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repo) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
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

// CountByRole returns the number of users holding the given role.
func (r *Repo) CountByRole(ctx context.Context, roleName string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users u JOIN roles r ON r.id = u.role_id WHERE r.name = $1
	`, roleName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// UpdatePasswordByEmail replaces the password hash of the user with the given email.
func (r *Repo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE email = $1
	`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(userNotFoundMessage)
	}
	return nil
}

// CreateOTP stores a hashed password-reset OTP for the user.
func (r *Repo) CreateOTP(ctx context.Context, userID uuid.UUID, otpHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO password_otps (user_id, otp_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, otpHash, expiresAt)
	if err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	return nil
}

// ConsumeOTP marks the matching unused OTP as used and returns its expiry.
// A single UPDATE keeps concurrent verification attempts from both succeeding.
func (r *Repo) ConsumeOTP(ctx context.Context, userID uuid.UUID, otpHash string) (time.Time, error) {
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		UPDATE password_otps SET used_at = now()
		WHERE id = (
			SELECT id FROM password_otps
			WHERE user_id = $1 AND otp_hash = $2 AND used_at IS NULL
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING expires_at
	`, userID, otpHash).Scan(&expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperr.NotFound("otp not found")
		}
		return time.Time{}, fmt.Errorf("consume otp: %w", err)
	}
	return expiresAt, nil
}
