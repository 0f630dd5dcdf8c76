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

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assignments repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Assignment is a row of the lead_assignments table.
type Assignment struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	UserID     uuid.UUID
	AssignedBy uuid.UUID
	Remarks    *string
	AssignedAt time.Time
}

// AssignResult carries the assignment row plus the lead name for notifications.
type AssignResult struct {
	Assignment Assignment
	LeadName   string
}

// Assign hands a lead to a user inside a single transaction. The status flip
// is a conditional UPDATE so two concurrent assigns cannot both win: the
// loser sees zero rows and gets a conflict, and the assignment row is only
// written after the flip succeeded.
func (r *Repo) Assign(ctx context.Context, leadID, userID, assignedBy uuid.UUID, remarks *string) (AssignResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return AssignResult{}, fmt.Errorf("begin assign: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var leadName string
	err = tx.QueryRow(ctx, `
		SELECT name FROM leads WHERE id = $1
	`, leadID).Scan(&leadName)
	if errors.Is(err, pgx.ErrNoRows) {
		return AssignResult{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return AssignResult{}, fmt.Errorf("lookup lead: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, userID).Scan(&exists); err != nil {
		return AssignResult{}, fmt.Errorf("check assignee: %w", err)
	}
	if !exists {
		return AssignResult{}, apperr.NotFound("user not found")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE leads SET status = 'Assigned', updated_at = now()
		WHERE id = $1 AND (status IS NULL OR status <> 'Assigned')
	`, leadID)
	if err != nil {
		return AssignResult{}, fmt.Errorf("flip lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return AssignResult{}, apperr.Conflict("lead already assigned")
	}

	var assignment Assignment
	err = tx.QueryRow(ctx, `
		INSERT INTO lead_assignments (lead_id, user_id, assigned_by, remarks)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, user_id, assigned_by, remarks, assigned_at
	`, leadID, userID, assignedBy, remarks).Scan(
		&assignment.ID, &assignment.LeadID, &assignment.UserID,
		&assignment.AssignedBy, &assignment.Remarks, &assignment.AssignedAt,
	)
	if err != nil {
		return AssignResult{}, fmt.Errorf("insert assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return AssignResult{}, fmt.Errorf("commit assign: %w", err)
	}

	return AssignResult{Assignment: assignment, LeadName: leadName}, nil
}

// ListByLead returns a lead's assignment history, newest first.
func (r *Repo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, user_id, assigned_by, remarks, assigned_at
		FROM lead_assignments WHERE lead_id = $1 ORDER BY assigned_at DESC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]Assignment, 0)
	for rows.Next() {
		var assignment Assignment
		if err := rows.Scan(&assignment.ID, &assignment.LeadID, &assignment.UserID, &assignment.AssignedBy, &assignment.Remarks, &assignment.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return assignments, nil
}
