package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"backoffice_portal_backend/platform/logger"
)

type testConfig struct {
	redisURL string
}

func (c testConfig) GetRedisURL() string                    { return c.redisURL }
func (c testConfig) GetRedisTLSInsecure() bool              { return false }
func (c testConfig) GetAsynqQueueName() string              { return "default" }
func (c testConfig) GetAsynqConcurrency() int               { return 1 }
func (c testConfig) GetFollowUpScanInterval() time.Duration { return time.Hour }

func TestClientEnqueuesFollowUpReminder(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	payload := FollowUpReminderPayload{
		LeadID:     "6a1f22de-9307-4cbb-97a5-0a70ac8f6a70",
		LeadName:   "Adeel Khan",
		UserID:     "e4c1b2ce-21e7-4c7a-b0ca-0ff4c0e0d9d1",
		FollowUpAt: time.Now().Format(time.RFC3339),
	}
	if err := client.EnqueueFollowUpReminder(context.Background(), payload); err != nil {
		t.Fatalf("EnqueueFollowUpReminder: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("default")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d tasks, want 1", len(pending))
	}
	if pending[0].Type != TaskFollowUpReminder {
		t.Errorf("task type = %q, want %q", pending[0].Type, TaskFollowUpReminder)
	}

	var got FollowUpReminderPayload
	if err := json.Unmarshal(pending[0].Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %+v, want %+v", got, payload)
	}
}

type fakeOverdueLister struct {
	overdue []OverdueFollowUp
}

func (f *fakeOverdueLister) ListOverdue(context.Context, time.Time) ([]OverdueFollowUp, error) {
	return f.overdue, nil
}

func TestDispatcherEnqueuesThroughClient(t *testing.T) {
	srv := miniredis.RunT(t)

	dispatcher, err := NewFollowUpDispatcher(testConfig{redisURL: "redis://" + srv.Addr()}, nil, logger.New("development"))
	if err != nil {
		t.Fatalf("NewFollowUpDispatcher: %v", err)
	}
	defer dispatcher.Close()

	followUpAt := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	dispatcher.repo = &fakeOverdueLister{overdue: []OverdueFollowUp{
		{
			LeadID:     uuid.MustParse("6a1f22de-9307-4cbb-97a5-0a70ac8f6a70"),
			LeadName:   "Adeel Khan",
			UserID:     uuid.MustParse("e4c1b2ce-21e7-4c7a-b0ca-0ff4c0e0d9d1"),
			FollowUpAt: followUpAt,
		},
		{
			LeadID:     uuid.MustParse("88a8703d-17ad-44d1-9d66-532eebd71a7b"),
			LeadName:   "Sana",
			UserID:     uuid.MustParse("e4c1b2ce-21e7-4c7a-b0ca-0ff4c0e0d9d1"),
			FollowUpAt: followUpAt,
		},
	}}

	dispatcher.scan(context.Background())

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("default")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d tasks, want 2", len(pending))
	}
	for _, task := range pending {
		if task.Type != TaskFollowUpReminder {
			t.Errorf("task type = %q, want %q", task.Type, TaskFollowUpReminder)
		}
	}
}

func TestParseFollowUpReminderPayload(t *testing.T) {
	payload := FollowUpReminderPayload{
		LeadID:   "6a1f22de-9307-4cbb-97a5-0a70ac8f6a70",
		LeadName: "Sana",
		UserID:   "e4c1b2ce-21e7-4c7a-b0ca-0ff4c0e0d9d1",
	}
	task, err := NewFollowUpReminderTask(payload)
	if err != nil {
		t.Fatalf("NewFollowUpReminderTask: %v", err)
	}
	got, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		t.Fatalf("ParseFollowUpReminderPayload: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %+v, want %+v", got, payload)
	}

	_, err = ParseFollowUpReminderPayload(asynq.NewTask(TaskFollowUpReminder, []byte("not json")))
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestStartOfTodayCutoff(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	cutoff := StartOfToday(now)

	if !cutoff.Equal(time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("cutoff = %v", cutoff)
	}

	yesterday := time.Date(2026, time.March, 13, 23, 59, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	if !yesterday.Before(cutoff) {
		t.Error("a follow-up dated yesterday should be overdue")
	}
	if today.Before(cutoff) {
		t.Error("a follow-up dated today should not be overdue yet")
	}
}
