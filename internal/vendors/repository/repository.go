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

// OrderStatusPending is the initial state of a client order.
const OrderStatusPending = "pending"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vendors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Order is a row of the orders table.
type Order struct {
	ID             uuid.UUID
	CountryID      uuid.UUID
	VisaTypeID     uuid.UUID
	ClientID       uuid.UUID
	SalesPersonID  uuid.UUID
	InitialPayment float64
	FinalPayment   float64
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ClientOrder pairs an order with the onboarded client's contact details.
type ClientOrder struct {
	Order       Order
	ClientName  string
	ClientEmail string
	ClientPhone *string
}

// OnboardParams holds everything needed to create a client user and their
// first order in one transaction.
type OnboardParams struct {
	Username       string
	Email          string
	PasswordHash   string
	Gender         *string
	PhoneNumber    *string
	Address        *string
	CountryID      uuid.UUID
	VisaTypeID     uuid.UUID
	InitialPayment float64
	FinalPayment   float64
	SalesPersonID  uuid.UUID
}

const orderColumns = `id, country_id, visa_type_id, client_id, sales_person_id, initial_payment, final_payment, status, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.CountryID, &o.VisaTypeID, &o.ClientID, &o.SalesPersonID,
		&o.InitialPayment, &o.FinalPayment, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Onboard creates the client-role user and the order together; neither row
// exists without the other. A duplicate email is a conflict.
func (r *Repo) Onboard(ctx context.Context, params OnboardParams) (Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("begin onboard: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var clientID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, gender, phone_number, address, role_id, created_by)
		SELECT $1, $2, $3, $4, $5, $6, roles.id, $7
		FROM roles WHERE roles.name = 'client'
		RETURNING id
	`, params.Username, params.Email, params.PasswordHash, params.Gender,
		params.PhoneNumber, params.Address, params.SalesPersonID,
	).Scan(&clientID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Order{}, apperr.Conflict("a user with this email already exists")
		}
		return Order{}, fmt.Errorf("create client user: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (country_id, visa_type_id, client_id, sales_person_id, initial_payment, final_payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderColumns,
		params.CountryID, params.VisaTypeID, clientID, params.SalesPersonID,
		params.InitialPayment, params.FinalPayment,
	)
	order, err := scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Order{}, apperr.NotFound("country or visa type not found")
		}
		return Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("commit onboard: %w", err)
	}
	return order, nil
}

// ListBySalesPerson returns the caller's client orders, newest first.
func (r *Repo) ListBySalesPerson(ctx context.Context, salesPersonID uuid.UUID) ([]ClientOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.country_id, o.visa_type_id, o.client_id, o.sales_person_id,
		       o.initial_payment, o.final_payment, o.status, o.created_at, o.updated_at,
		       u.username, u.email, u.phone_number
		FROM orders o
		JOIN users u ON u.id = o.client_id
		WHERE o.sales_person_id = $1
		ORDER BY o.created_at DESC
	`, salesPersonID)
	if err != nil {
		return nil, fmt.Errorf("list client orders: %w", err)
	}
	defer rows.Close()

	orders := make([]ClientOrder, 0)
	for rows.Next() {
		var co ClientOrder
		err := rows.Scan(
			&co.Order.ID, &co.Order.CountryID, &co.Order.VisaTypeID,
			&co.Order.ClientID, &co.Order.SalesPersonID,
			&co.Order.InitialPayment, &co.Order.FinalPayment, &co.Order.Status,
			&co.Order.CreatedAt, &co.Order.UpdatedAt,
			&co.ClientName, &co.ClientEmail, &co.ClientPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client order: %w", err)
		}
		orders = append(orders, co)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return orders, nil
}

// GetOrderByID returns a single order.
func (r *Repo) GetOrderByID(ctx context.Context, id uuid.UUID) (Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, apperr.NotFound("order not found")
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// UpdateStatus changes an order's status, but only for the salesperson who
// owns it. The ownership check lives in the WHERE clause.
func (r *Repo) UpdateStatus(ctx context.Context, orderID, salesPersonID uuid.UUID, status string) (Order, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id = $1 AND sales_person_id = $2
		RETURNING `+orderColumns,
		orderID, salesPersonID, status,
	)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetOrderByID(ctx, orderID); getErr != nil {
			return Order{}, getErr
		}
		return Order{}, apperr.Forbidden("only the order's salesperson can change its status")
	}
	if err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}
