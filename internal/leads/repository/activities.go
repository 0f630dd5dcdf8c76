package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Activity is an append-only row of the lead_activities table.
type Activity struct {
	ID           uuid.UUID
	LeadID       uuid.UUID
	UserID       uuid.UUID
	Type         string
	Status       string
	Comment      *string
	FollowUpDate *time.Time
	CreatedAt    time.Time
}

// Discussion is an append-only row of the lead_discussions table.
type Discussion struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	UserID    uuid.UUID
	Message   string
	CreatedAt time.Time
}

// CreateActivityParams holds the fields for appending an activity.
type CreateActivityParams struct {
	LeadID       uuid.UUID
	UserID       uuid.UUID
	Type         string
	Status       string
	Comment      *string
	FollowUpDate *time.Time
}

const activityColumns = `id, lead_id, user_id, type, status, comment, follow_up_date, created_at`

func scanActivity(row pgx.Row) (Activity, error) {
	var activity Activity
	err := row.Scan(
		&activity.ID, &activity.LeadID, &activity.UserID, &activity.Type,
		&activity.Status, &activity.Comment, &activity.FollowUpDate, &activity.CreatedAt,
	)
	return activity, err
}

// CreateActivity appends one activity row. Existing rows are never updated.
func (r *Repo) CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	query := `
		INSERT INTO lead_activities (lead_id, user_id, type, status, comment, follow_up_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + activityColumns

	activity, err := scanActivity(r.pool.QueryRow(ctx, query,
		params.LeadID, params.UserID, params.Type, params.Status,
		params.Comment, params.FollowUpDate,
	))
	if err != nil {
		return Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return activity, nil
}

// ListActivitiesByLead returns a lead's activities, newest first.
func (r *Repo) ListActivitiesByLead(ctx context.Context, leadID uuid.UUID) ([]Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM lead_activities WHERE lead_id = $1 ORDER BY created_at DESC`
	return r.queryActivities(ctx, query, leadID)
}

// ListActivitiesByUser returns all activities created by a user, newest first.
func (r *Repo) ListActivitiesByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM lead_activities WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryActivities(ctx, query, userID)
}

func (r *Repo) queryActivities(ctx context.Context, query string, args ...interface{}) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return activities, nil
}

// CreateDiscussion appends one discussion row.
func (r *Repo) CreateDiscussion(ctx context.Context, leadID, userID uuid.UUID, message string) (Discussion, error) {
	query := `
		INSERT INTO lead_discussions (lead_id, user_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, lead_id, user_id, message, created_at`

	var discussion Discussion
	err := r.pool.QueryRow(ctx, query, leadID, userID, message).Scan(
		&discussion.ID, &discussion.LeadID, &discussion.UserID,
		&discussion.Message, &discussion.CreatedAt,
	)
	if err != nil {
		return Discussion{}, fmt.Errorf("create discussion: %w", err)
	}
	return discussion, nil
}

// ListDiscussionsByLead returns a lead's discussions, newest first.
func (r *Repo) ListDiscussionsByLead(ctx context.Context, leadID uuid.UUID) ([]Discussion, error) {
	query := `SELECT id, lead_id, user_id, message, created_at FROM lead_discussions WHERE lead_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("query discussions: %w", err)
	}
	defer rows.Close()

	discussions := make([]Discussion, 0)
	for rows.Next() {
		var discussion Discussion
		if err := rows.Scan(&discussion.ID, &discussion.LeadID, &discussion.UserID, &discussion.Message, &discussion.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan discussion: %w", err)
		}
		discussions = append(discussions, discussion)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return discussions, nil
}
