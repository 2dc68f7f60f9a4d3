package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"beu/apiclient"
	"beu/config"
	reservationRepo "beu/database/repository/reservation"
	"beu/models"
	"beu/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BackendAPI is the part of the backend client background tasks call.
type BackendAPI interface {
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	TriggerCalendarSync(ctx context.Context) error
}

// TaskHandlers runs gateway tasks with the service token on behalf of the
// user named in each payload.
type TaskHandlers struct {
	API          BackendAPI
	Mirror       reservationRepo.ReservationRepository
	ServiceToken string
	Logger       *zap.Logger
}

func (h *TaskHandlers) backendContext(ctx context.Context, userID string) context.Context {
	return apiclient.WithActingUser(apiclient.WithToken(ctx, h.ServiceToken), userID)
}

// retryable stops retries for backend answers that will not change.
func retryable(err error) error {
	if status := apiclient.StatusCode(err); status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return err
}

// HandleMirrorRefresh reloads a user's reservations into the mirror.
func (h *TaskHandlers) HandleMirrorRefresh(ctx context.Context, task *asynq.Task) error {
	var p models.MirrorRefreshPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil || p.UserID == "" {
		h.Logger.Error("Invalid mirror refresh payload", zap.ByteString("payload", task.Payload()))
		return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
	}

	items, err := h.API.ListReservations(h.backendContext(ctx, p.UserID), models.ReservationFilter{From: p.From, To: p.To})
	if err != nil {
		h.Logger.Warn("Mirror refresh failed", zap.String("userID", p.UserID), zap.Error(err))
		return retryable(err)
	}
	if err := h.Mirror.ReplaceRange(ctx, p.UserID, p.From, p.To, items); err != nil {
		return err
	}
	h.Logger.Info("Reservation mirror refreshed",
		zap.String("userID", p.UserID), zap.Int("reservations", len(items)))
	return nil
}

// HandleCalendarSync asks the backend to push the user's schedule to the
// connected external calendar.
func (h *TaskHandlers) HandleCalendarSync(ctx context.Context, task *asynq.Task) error {
	var p models.CalendarSyncPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil || p.UserID == "" {
		h.Logger.Error("Invalid calendar sync payload", zap.ByteString("payload", task.Payload()))
		return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
	}
	if err := h.API.TriggerCalendarSync(h.backendContext(ctx, p.UserID)); err != nil {
		h.Logger.Warn("Calendar sync trigger failed",
			zap.String("userID", p.UserID), zap.String("reason", p.Reason), zap.Error(err))
		return retryable(err)
	}
	h.Logger.Info("Calendar sync triggered", zap.String("userID", p.UserID), zap.String("reason", p.Reason))
	return nil
}

// NewServeMux routes task types to h.
func NewServeMux(h *TaskHandlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMirrorRefresh, h.HandleMirrorRefresh)
	mux.HandleFunc(tasks.TypeCalendarSync, h.HandleCalendarSync)
	return mux
}

// RedisOpt is the asynq connection for the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitWorker starts the task worker in the background and returns the
// server so the caller can shut it down.
func InitWorker(h *TaskHandlers) *asynq.Server {
	srv := asynq.NewServer(RedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
		Logger: h.Logger.Sugar(),
	})
	mux := NewServeMux(h)

	go func() {
		h.Logger.Info("Starting task worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			h.Logger.Error("Task worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				h.Logger.Fatal("Task worker could not start")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
