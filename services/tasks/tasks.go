package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"beu/models"

	"github.com/hibiken/asynq"
)

const (
	TypeMirrorRefresh = "mirror:refresh"
	TypeCalendarSync  = "calendar:sync"
)

// NewMirrorRefreshTask builds a reservation mirror refresh. Duplicate
// refreshes for the same user and range are collapsed while one is pending.
func NewMirrorRefreshTask(payload models.MirrorRefreshPayload, uniqueFor time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMirrorRefresh, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	if uniqueFor > 0 {
		opts = append(opts, asynq.Unique(uniqueFor))
	}
	return task, opts, nil
}

// NewCalendarSyncTask builds an external calendar sync trigger.
func NewCalendarSyncTask(payload models.CalendarSyncPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCalendarSync, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.ProcessIn(5 * time.Second),
		asynq.Unique(time.Minute),
	}
	return task, opts, nil
}

// Enqueuer puts gateway tasks on the asynq queue.
type Enqueuer struct {
	Client    *asynq.Client
	UniqueFor time.Duration
}

func NewEnqueuer(client *asynq.Client, uniqueFor time.Duration) *Enqueuer {
	return &Enqueuer{Client: client, UniqueFor: uniqueFor}
}

func (e *Enqueuer) enqueue(ctx context.Context, task *asynq.Task, opts []asynq.Option) error {
	_, err := e.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// EnqueueMirrorRefresh queues a refresh of userID's reservations in [from, to].
func (e *Enqueuer) EnqueueMirrorRefresh(ctx context.Context, userID, from, to string) error {
	task, opts, err := NewMirrorRefreshTask(models.MirrorRefreshPayload{UserID: userID, From: from, To: to}, e.UniqueFor)
	if err != nil {
		return err
	}
	return e.enqueue(ctx, task, opts)
}

// EnqueueCalendarSync queues a calendar sync for userID.
func (e *Enqueuer) EnqueueCalendarSync(ctx context.Context, userID, reason string) error {
	task, opts, err := NewCalendarSyncTask(models.CalendarSyncPayload{UserID: userID, Reason: reason})
	if err != nil {
		return err
	}
	return e.enqueue(ctx, task, opts)
}
