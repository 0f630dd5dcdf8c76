package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice_portal_backend/platform/apperr"
)

const (
	// StatusPending and StatusCompleted are the two CSR ticket statuses.
	StatusPending   = "pending"
	StatusCompleted = "completed"

	// AttendedStatusPending and AttendedStatusAttended are the attend states.
	AttendedStatusPending  = "pending"
	AttendedStatusAttended = "attended"
)

const ticketNotFoundMessage = "ticket not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tickets repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CsrTicket is a row of the csr_tickets table.
type CsrTicket struct {
	ID                uuid.UUID
	OrderNumber       string
	Problem           string
	Fees              *string
	Procedure         *string
	Condition         *string
	CreatedBy         uuid.UUID
	Status            string
	AttendedStatus    string
	AttendedBy        *uuid.UUID
	NewProduct        *string
	AttemptDate       *time.Time
	Qty               *int
	Pkgs              *int
	ShippingCompanyID *uuid.UUID
	TrackingNo        *string
	DriverID          *uuid.UUID
	ShippedDate       *time.Time
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserTicket is a row of the user_tickets table.
type UserTicket struct {
	ID          uuid.UUID
	Email       string
	PhoneNumber string
	OrderNumber string
	Problem     string
	CreatedAt   time.Time
}

// CreateCsrTicketParams holds the fields for inserting a CSR ticket.
type CreateCsrTicketParams struct {
	OrderNumber string
	Problem     string
	Fees        *string
	Procedure   *string
	Condition   *string
	CreatedBy   uuid.UUID
}

// CreateUserTicketParams holds the fields for a customer-submitted ticket.
type CreateUserTicketParams struct {
	Email       string
	PhoneNumber string
	OrderNumber string
	Problem     string
}

// AttendParams are the optional fulfillment fields merged when a CSR lead
// attends a ticket.
type AttendParams struct {
	AttendedBy        uuid.UUID
	NewProduct        *string
	AttemptDate       *time.Time
	Qty               *int
	Pkgs              *int
	ShippingCompanyID *uuid.UUID
	TrackingNo        *string
	DriverID          *uuid.UUID
	ShippedDate       *time.Time
	Notes             *string
}

// ConvertParams are the fields merged into the CSR ticket generated from a
// user ticket.
type ConvertParams struct {
	Fees      *string
	Procedure *string
	Condition *string
	CreatedBy uuid.UUID
}

// Counts aggregates ticket statistics for the stats endpoint.
type Counts struct {
	Pending     int64
	Completed   int64
	Attended    int64
	Unattended  int64
	UserTickets int64
}

const csrTicketColumns = `id, order_number, problem, fees, procedure, condition, created_by, status, attended_status, attended_by, new_product, attempt_date, qty, pkgs, shipping_company_id, tracking_no, driver_id, shipped_date, notes, created_at, updated_at`

func scanCsrTicket(row pgx.Row) (CsrTicket, error) {
	var t CsrTicket
	err := row.Scan(
		&t.ID, &t.OrderNumber, &t.Problem, &t.Fees, &t.Procedure, &t.Condition,
		&t.CreatedBy, &t.Status, &t.AttendedStatus, &t.AttendedBy,
		&t.NewProduct, &t.AttemptDate, &t.Qty, &t.Pkgs, &t.ShippingCompanyID,
		&t.TrackingNo, &t.DriverID, &t.ShippedDate, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// CreateCsr inserts a new CSR ticket in the pending state.
func (r *Repo) CreateCsr(ctx context.Context, params CreateCsrTicketParams) (CsrTicket, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO csr_tickets (order_number, problem, fees, procedure, condition, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+csrTicketColumns,
		params.OrderNumber, params.Problem, params.Fees, params.Procedure,
		params.Condition, params.CreatedBy,
	)
	ticket, err := scanCsrTicket(row)
	if err != nil {
		return CsrTicket{}, fmt.Errorf("create csr ticket: %w", err)
	}
	return ticket, nil
}

// ListCsr returns all CSR tickets, newest first.
func (r *Repo) ListCsr(ctx context.Context) ([]CsrTicket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+csrTicketColumns+` FROM csr_tickets ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list csr tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]CsrTicket, 0)
	for rows.Next() {
		ticket, err := scanCsrTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan csr ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return tickets, nil
}

// GetCsrByID returns a single CSR ticket.
func (r *Repo) GetCsrByID(ctx context.Context, id uuid.UUID) (CsrTicket, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+csrTicketColumns+` FROM csr_tickets WHERE id = $1
	`, id)
	ticket, err := scanCsrTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return CsrTicket{}, apperr.NotFound(ticketNotFoundMessage)
	}
	if err != nil {
		return CsrTicket{}, fmt.Errorf("get csr ticket: %w", err)
	}
	return ticket, nil
}

// CompletePending flips a pending CSR ticket to completed. The status guard
// lives in the WHERE clause so a ticket can only ever make that transition
// once; any other starting state is a conflict.
func (r *Repo) CompletePending(ctx context.Context, id uuid.UUID) (CsrTicket, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE csr_tickets SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING `+csrTicketColumns,
		id, StatusCompleted, StatusPending,
	)
	ticket, err := scanCsrTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetCsrByID(ctx, id); getErr != nil {
			return CsrTicket{}, getErr
		}
		return CsrTicket{}, apperr.Conflict("ticket is not pending")
	}
	if err != nil {
		return CsrTicket{}, fmt.Errorf("complete ticket: %w", err)
	}
	return ticket, nil
}

// Attend marks a CSR ticket as attended and merges the optional fulfillment
// fields. The attended guard is in the WHERE clause, so a second attend on
// the same ticket matches zero rows.
func (r *Repo) Attend(ctx context.Context, id uuid.UUID, params AttendParams) (CsrTicket, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE csr_tickets SET
			attended_status = $2,
			attended_by = $3,
			status = $4,
			new_product = COALESCE($5, new_product),
			attempt_date = COALESCE($6, attempt_date),
			qty = COALESCE($7, qty),
			pkgs = COALESCE($8, pkgs),
			shipping_company_id = COALESCE($9, shipping_company_id),
			tracking_no = COALESCE($10, tracking_no),
			driver_id = COALESCE($11, driver_id),
			shipped_date = COALESCE($12, shipped_date),
			notes = COALESCE($13, notes),
			updated_at = now()
		WHERE id = $1 AND attended_status <> $2
		RETURNING `+csrTicketColumns,
		id, AttendedStatusAttended, params.AttendedBy, StatusCompleted,
		params.NewProduct, params.AttemptDate, params.Qty, params.Pkgs,
		params.ShippingCompanyID, params.TrackingNo, params.DriverID,
		params.ShippedDate, params.Notes,
	)
	ticket, err := scanCsrTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetCsrByID(ctx, id); getErr != nil {
			return CsrTicket{}, getErr
		}
		return CsrTicket{}, apperr.Conflict("ticket already attended")
	}
	if err != nil {
		return CsrTicket{}, fmt.Errorf("attend ticket: %w", err)
	}
	return ticket, nil
}

// CreateUser inserts a customer-submitted ticket.
func (r *Repo) CreateUser(ctx context.Context, params CreateUserTicketParams) (UserTicket, error) {
	var ticket UserTicket
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_tickets (email, phone_number, order_number, problem)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, phone_number, order_number, problem, created_at
	`, params.Email, params.PhoneNumber, params.OrderNumber, params.Problem).Scan(
		&ticket.ID, &ticket.Email, &ticket.PhoneNumber, &ticket.OrderNumber,
		&ticket.Problem, &ticket.CreatedAt,
	)
	if err != nil {
		return UserTicket{}, fmt.Errorf("create user ticket: %w", err)
	}
	return ticket, nil
}

// ListUser returns all customer-submitted tickets, newest first.
func (r *Repo) ListUser(ctx context.Context) ([]UserTicket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, phone_number, order_number, problem, created_at
		FROM user_tickets ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list user tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]UserTicket, 0)
	for rows.Next() {
		var ticket UserTicket
		if err := rows.Scan(&ticket.ID, &ticket.Email, &ticket.PhoneNumber, &ticket.OrderNumber, &ticket.Problem, &ticket.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return tickets, nil
}

// ConvertUserTicket creates a CSR ticket from a user ticket and removes the
// source row, both inside one transaction. If the insert fails the user
// ticket survives untouched.
func (r *Repo) ConvertUserTicket(ctx context.Context, userTicketID uuid.UUID, params ConvertParams) (CsrTicket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CsrTicket{}, fmt.Errorf("begin convert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var source UserTicket
	err = tx.QueryRow(ctx, `
		SELECT id, email, phone_number, order_number, problem, created_at
		FROM user_tickets WHERE id = $1 FOR UPDATE
	`, userTicketID).Scan(
		&source.ID, &source.Email, &source.PhoneNumber, &source.OrderNumber,
		&source.Problem, &source.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return CsrTicket{}, apperr.NotFound("user ticket not found")
	}
	if err != nil {
		return CsrTicket{}, fmt.Errorf("lookup user ticket: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO csr_tickets (order_number, problem, fees, procedure, condition, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+csrTicketColumns,
		source.OrderNumber, source.Problem, params.Fees, params.Procedure,
		params.Condition, params.CreatedBy,
	)
	ticket, err := scanCsrTicket(row)
	if err != nil {
		return CsrTicket{}, fmt.Errorf("create converted ticket: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_tickets WHERE id = $1`, userTicketID); err != nil {
		return CsrTicket{}, fmt.Errorf("delete user ticket: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return CsrTicket{}, fmt.Errorf("commit convert: %w", err)
	}
	return ticket, nil
}

// CountCsrByStatus counts CSR tickets with the given status.
func (r *Repo) CountCsrByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM csr_tickets WHERE status = $1`, status)
}

// CountCsrByAttended counts CSR tickets with the given attended status.
func (r *Repo) CountCsrByAttended(ctx context.Context, attendedStatus string) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM csr_tickets WHERE attended_status = $1`, attendedStatus)
}

// CountUser counts customer-submitted tickets.
func (r *Repo) CountUser(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM user_tickets`)
}

func (r *Repo) count(ctx context.Context, sql string, args ...any) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return n, nil
}
