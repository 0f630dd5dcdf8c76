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

const leadNotFoundMessage = "lead not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Lead is a row of the leads table.
type Lead struct {
	ID              uuid.UUID
	Name            string
	PhoneNumber     string
	Email           *string
	Address         *string
	Inquiry         string
	InquiryCountry  *string
	Budget          *string
	Detail          *string
	Occupation      *string
	Service         *string
	Source          *string
	Advisor         *string
	Status          string
	QualifiedStatus string
	Remarketing     bool
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateLeadParams holds the fields for inserting a lead.
type CreateLeadParams struct {
	Name           string
	PhoneNumber    string
	Email          *string
	Address        *string
	Inquiry        string
	InquiryCountry *string
	Budget         *string
	Detail         *string
	Occupation     *string
	Service        *string
	Source         *string
	Advisor        *string
	Status         string
	CreatedBy      uuid.UUID
}

// UpdateLeadParams holds the optional fields for a partial lead update.
type UpdateLeadParams struct {
	Name           *string
	PhoneNumber    *string
	Email          *string
	Address        *string
	Inquiry        *string
	InquiryCountry *string
	Budget         *string
	Detail         *string
	Occupation     *string
	Service        *string
	Source         *string
	Advisor        *string
	Status         *string
}

// FilterParams are conjunctive filters for the filtered lead listing.
type FilterParams struct {
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	NamePhone       *string
	Status          *string
	QualifiedStatus *string
	Advisor         *string
	Source          *string
}

// Scope restricts listings to the caller's visibility. All means no
// restriction; otherwise only leads with an assignment for UserID match.
type Scope struct {
	All    bool
	UserID uuid.UUID
}

// RowError reports a single failed row in a batch insert.
type RowError struct {
	Row int
	Err error
}

const leadColumns = `id, name, phone_number, email, address, inquiry, inquiry_country, budget, detail, occupation, service, source, advisor, status, qualified_status, remarketing, created_by, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.PhoneNumber, &lead.Email, &lead.Address,
		&lead.Inquiry, &lead.InquiryCountry, &lead.Budget, &lead.Detail,
		&lead.Occupation, &lead.Service, &lead.Source, &lead.Advisor,
		&lead.Status, &lead.QualifiedStatus, &lead.Remarketing,
		&lead.CreatedBy, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

const insertLeadSQL = `
	INSERT INTO leads (name, phone_number, email, address, inquiry, inquiry_country, budget, detail, occupation, service, source, advisor, status, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING ` + leadColumns

func insertLeadArgs(params CreateLeadParams) []interface{} {
	return []interface{}{
		params.Name, params.PhoneNumber, params.Email, params.Address,
		params.Inquiry, params.InquiryCountry, params.Budget, params.Detail,
		params.Occupation, params.Service, params.Source, params.Advisor,
		params.Status, params.CreatedBy,
	}
}

// Create inserts a single lead.
func (r *Repo) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, insertLeadSQL, insertLeadArgs(params)...))
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// CreateBatch inserts leads one statement per row, each in its own implicit
// transaction. A failed row does not abort the others and cannot roll back
// rows already inserted; failures come back as RowErrors.
func (r *Repo) CreateBatch(ctx context.Context, rows []CreateLeadParams) (int, []RowError) {
	inserted := 0
	var rowErrors []RowError
	for i, params := range rows {
		if _, err := scanLead(r.pool.QueryRow(ctx, insertLeadSQL, insertLeadArgs(params)...)); err != nil {
			rowErrors = append(rowErrors, RowError{Row: i, Err: err})
			continue
		}
		inserted++
	}
	return inserted, rowErrors
}

// GetByID retrieves a lead by ID.
func (r *Repo) GetByID(ctx context.Context, leadID uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// scopeClause appends the visibility restriction for non-admin callers.
// $1 is always the scope user id so filter placeholders start at $2.
const scopeClause = `($1::uuid IS NULL OR EXISTS (
	SELECT 1 FROM lead_assignments a WHERE a.lead_id = leads.id AND a.user_id = $1
))`

func scopeArg(scope Scope) interface{} {
	if scope.All {
		return nil
	}
	return scope.UserID
}

// List returns non-remarketing leads visible in the scope, newest first.
func (r *Repo) List(ctx context.Context, scope Scope) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE NOT remarketing AND ` + scopeClause + `
		ORDER BY created_at DESC`
	return r.queryLeads(ctx, query, scopeArg(scope))
}

// ListRemarketing returns remarketing leads visible in the scope, newest first.
func (r *Repo) ListRemarketing(ctx context.Context, scope Scope) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE remarketing AND ` + scopeClause + `
		ORDER BY created_at DESC`
	return r.queryLeads(ctx, query, scopeArg(scope))
}

// Filter returns leads matching all provided filters within the scope.
func (r *Repo) Filter(ctx context.Context, scope Scope, params FilterParams) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE ` + scopeClause + `
		AND ($2::timestamptz IS NULL OR created_at >= $2)
		AND ($3::timestamptz IS NULL OR created_at <= $3)
		AND ($4::text IS NULL OR name ILIKE '%' || $4 || '%' OR phone_number ILIKE '%' || $4 || '%')
		AND ($5::text IS NULL OR status = $5)
		AND ($6::text IS NULL OR qualified_status = lower($6))
		AND ($7::text IS NULL OR advisor = $7)
		AND ($8::text IS NULL OR source = $8)
		ORDER BY created_at DESC`

	return r.queryLeads(ctx, query, scopeArg(scope),
		params.CreatedFrom, params.CreatedTo, params.NamePhone,
		params.Status, params.QualifiedStatus, params.Advisor, params.Source)
}

func (r *Repo) queryLeads(ctx context.Context, query string, args ...interface{}) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}

// Update applies a partial update; absent fields keep their values.
func (r *Repo) Update(ctx context.Context, leadID uuid.UUID, params UpdateLeadParams) (Lead, error) {
	query := `
		UPDATE leads SET
			name = COALESCE($2, name),
			phone_number = COALESCE($3, phone_number),
			email = COALESCE($4, email),
			address = COALESCE($5, address),
			inquiry = COALESCE($6, inquiry),
			inquiry_country = COALESCE($7, inquiry_country),
			budget = COALESCE($8, budget),
			detail = COALESCE($9, detail),
			occupation = COALESCE($10, occupation),
			service = COALESCE($11, service),
			source = COALESCE($12, source),
			advisor = COALESCE($13, advisor),
			status = COALESCE($14, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, leadID,
		params.Name, params.PhoneNumber, params.Email, params.Address,
		params.Inquiry, params.InquiryCountry, params.Budget, params.Detail,
		params.Occupation, params.Service, params.Source, params.Advisor,
		params.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// SetQualifiedStatus updates the qualification flag.
func (r *Repo) SetQualifiedStatus(ctx context.Context, leadID uuid.UUID, qualifiedStatus string) (Lead, error) {
	query := `
		UPDATE leads SET qualified_status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, leadID, qualifiedStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("set qualified status: %w", err)
	}
	return lead, nil
}

// ToggleRemarketing flips the remarketing flag.
func (r *Repo) ToggleRemarketing(ctx context.Context, leadID uuid.UUID) (Lead, error) {
	query := `
		UPDATE leads SET remarketing = NOT remarketing, updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("toggle remarketing: %w", err)
	}
	return lead, nil
}

// CountTotal counts all leads visible in the scope.
func (r *Repo) CountTotal(ctx context.Context, scope Scope) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM leads WHERE `+scopeClause, scopeArg(scope))
}

// CountRemarketing counts remarketing leads visible in the scope.
func (r *Repo) CountRemarketing(ctx context.Context, scope Scope) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM leads WHERE remarketing AND `+scopeClause, scopeArg(scope))
}

// CountQualified counts qualified leads visible in the scope.
func (r *Repo) CountQualified(ctx context.Context, scope Scope) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM leads WHERE qualified_status = 'qualified' AND `+scopeClause, scopeArg(scope))
}

// CountUnqualified counts unqualified leads visible in the scope.
func (r *Repo) CountUnqualified(ctx context.Context, scope Scope) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM leads WHERE qualified_status = 'unqualified' AND `+scopeClause, scopeArg(scope))
}

func (r *Repo) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}
