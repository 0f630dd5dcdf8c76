package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice_portal_backend/platform/config"
	"backoffice_portal_backend/platform/logger"
)

// OverdueFollowUp is one (user, lead) pair with a follow-up activity whose
// date has passed without action.
type OverdueFollowUp struct {
	LeadID     uuid.UUID
	LeadName   string
	UserID     uuid.UUID
	FollowUpAt time.Time
}

// overdueLister scans lead activities for overdue follow-ups.
type overdueLister interface {
	ListOverdue(ctx context.Context, cutoff time.Time) ([]OverdueFollowUp, error)
}

type followUpRepo struct {
	pool *pgxpool.Pool
}

// ListOverdue returns one row per (user, lead) pair with the earliest
// overdue follow-up date before the cutoff.
func (r *followUpRepo) ListOverdue(ctx context.Context, cutoff time.Time) ([]OverdueFollowUp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.lead_id, l.name, a.user_id, min(a.follow_up_date)
		FROM lead_activities a
		JOIN leads l ON l.id = a.lead_id
		WHERE a.follow_up_date IS NOT NULL
		  AND a.follow_up_date < $1
		  AND a.user_id IS NOT NULL
		GROUP BY a.lead_id, l.name, a.user_id
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list overdue follow-ups: %w", err)
	}
	defer rows.Close()

	overdue := make([]OverdueFollowUp, 0)
	for rows.Next() {
		var o OverdueFollowUp
		if err := rows.Scan(&o.LeadID, &o.LeadName, &o.UserID, &o.FollowUpAt); err != nil {
			return nil, fmt.Errorf("scan overdue follow-up: %w", err)
		}
		overdue = append(overdue, o)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return overdue, nil
}

// FollowUpDispatcher periodically scans for overdue follow-ups and enqueues
// one reminder task per (user, lead) pair. Duplicate deliveries are absorbed
// by the worker's dedup-guarded insert, so overlapping runs are safe.
type FollowUpDispatcher struct {
	client   *Client
	repo     overdueLister
	interval time.Duration
	log      *logger.Logger
}

func NewFollowUpDispatcher(cfg config.SchedulerConfig, pool *pgxpool.Pool, log *logger.Logger) (*FollowUpDispatcher, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	interval := cfg.GetFollowUpScanInterval()
	if interval <= 0 {
		interval = time.Hour
	}

	return &FollowUpDispatcher{
		client:   client,
		repo:     &followUpRepo{pool: pool},
		interval: interval,
		log:      log,
	}, nil
}

func (d *FollowUpDispatcher) Close() error {
	if d == nil {
		return nil
	}
	return d.client.Close()
}

// Run scans on every tick until the context is cancelled.
func (d *FollowUpDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil || d.repo == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		d.scan(ctx)
	}
}

func (d *FollowUpDispatcher) scan(ctx context.Context) {
	cutoff := StartOfToday(time.Now())
	overdue, err := d.repo.ListOverdue(ctx, cutoff)
	if err != nil {
		d.log.Warn("follow-up scan failed", "error", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	enqueued := 0
	for _, o := range overdue {
		err := d.client.EnqueueFollowUpReminder(ctx, FollowUpReminderPayload{
			LeadID:     o.LeadID.String(),
			LeadName:   o.LeadName,
			UserID:     o.UserID.String(),
			FollowUpAt: o.FollowUpAt.Format(time.RFC3339),
		})
		if err != nil {
			d.log.Warn("follow-up enqueue failed", "error", err, "lead_id", o.LeadID)
			continue
		}
		enqueued++
	}
	d.log.Info("follow-up scan complete", "overdue", len(overdue), "enqueued", enqueued)
}

// StartOfToday truncates a time to local midnight. A follow-up dated before
// today is overdue; one due today is not yet.
func StartOfToday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
