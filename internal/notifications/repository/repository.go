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
	// AudienceUser addresses a single user; AudienceRole broadcasts to
	// everyone holding a role.
	AudienceUser = "user"
	AudienceRole = "role"

	// CategoryFollowUpOverdue marks scheduler reminders; the partial unique
	// index on (user_id, lead_id) only applies to this category.
	CategoryFollowUpOverdue = "followup_overdue"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notifications repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Notification is a row of the notifications table.
type Notification struct {
	ID        uuid.UUID
	Audience  string
	UserID    *uuid.UUID
	Role      *string
	Message   string
	LeadID    *uuid.UUID
	TicketID  *uuid.UUID
	CreatedBy *uuid.UUID
	Category  string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// CreateParams holds the fields for inserting a notification.
type CreateParams struct {
	Audience  string
	UserID    *uuid.UUID
	Role      *string
	Message   string
	LeadID    *uuid.UUID
	TicketID  *uuid.UUID
	CreatedBy *uuid.UUID
	Category  string
}

const notificationColumns = `id, audience, user_id, role, message, lead_id, ticket_id, created_by, category, is_read, read_at, created_at`

func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID, &n.Audience, &n.UserID, &n.Role, &n.Message, &n.LeadID,
		&n.TicketID, &n.CreatedBy, &n.Category, &n.IsRead, &n.ReadAt,
		&n.CreatedAt,
	)
	return n, err
}

// Create inserts a notification.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Notification, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (audience, user_id, role, message, lead_id, ticket_id, created_by, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+notificationColumns,
		params.Audience, params.UserID, params.Role, params.Message,
		params.LeadID, params.TicketID, params.CreatedBy, params.Category,
	)
	notification, err := scanNotification(row)
	if err != nil {
		return Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return notification, nil
}

// CreateFollowUpReminder inserts a follow-up reminder for a (user, lead)
// pair. The partial unique index absorbs duplicates from overlapping
// scheduler runs, so a second insert is a silent no-op.
func (r *Repo) CreateFollowUpReminder(ctx context.Context, userID, leadID uuid.UUID, message string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (audience, user_id, message, lead_id, category)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, lead_id) WHERE category = 'followup_overdue' DO NOTHING
	`, AudienceUser, userID, message, leadID, CategoryFollowUpOverdue)
	if err != nil {
		return fmt.Errorf("create follow-up reminder: %w", err)
	}
	return nil
}

// ListUnread returns the caller's unread notifications: rows addressed to
// the user plus broadcasts for the caller's role, newest first.
func (r *Repo) ListUnread(ctx context.Context, userID uuid.UUID, role string) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE is_read = false
		  AND ((audience = $3 AND user_id = $1) OR (audience = $4 AND role = $2))
		ORDER BY created_at DESC
	`, userID, role, AudienceUser, AudienceRole)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notifications, nil
}

// MarkRead flags a notification as read, but only when it belongs to the
// caller: addressed to the user or broadcast to the caller's role. An id
// the caller cannot see is indistinguishable from a missing one. Marking an
// already-read notification again succeeds without touching the row.
func (r *Repo) MarkRead(ctx context.Context, id, userID uuid.UUID, role string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true, read_at = now()
		WHERE id = $1 AND is_read = false
		  AND ((audience = $4 AND user_id = $2) OR (audience = $5 AND role = $3))
	`, id, userID, role, AudienceUser, AudienceRole)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var alreadyRead bool
	err = r.pool.QueryRow(ctx, `
		SELECT is_read FROM notifications
		WHERE id = $1
		  AND ((audience = $4 AND user_id = $2) OR (audience = $5 AND role = $3))
	`, id, userID, role, AudienceUser, AudienceRole).Scan(&alreadyRead)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("notification not found")
		}
		return fmt.Errorf("check notification read state: %w", err)
	}
	return nil
}
