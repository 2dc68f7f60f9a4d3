package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"beu/apiclient"
	notificationRepo "beu/database/repository/notification"
	"beu/models"
	"beu/services/calendar"
	"beu/services/optimistic"

	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	API     NotificationAPI
	Mirror  notificationRepo.NotificationRepository
	Options calendar.Options
	Now     func() time.Time
	Logger  *zap.Logger
}

func NewDefaultNotificationService(api NotificationAPI, mirror notificationRepo.NotificationRepository, opts calendar.Options, logger *zap.Logger) (*DefaultNotificationService, error) {
	if api == nil || mirror == nil {
		return nil, fmt.Errorf("notification service initialization error: api or mirror is nil")
	}
	return &DefaultNotificationService{
		API:     api,
		Mirror:  mirror,
		Options: opts.WithDefaults(),
		Now:     time.Now,
		Logger:  logger,
	}, nil
}

// List fetches notifications from the backend, refreshes the mirror and
// returns them grouped by day. When the backend is unreachable the mirror
// is served and the feed is marked stale.
func (s *DefaultNotificationService) List(ctx context.Context, userID string) (*models.NotificationFeed, error) {
	items, err := s.API.ListNotifications(ctx)
	stale := false
	if err != nil {
		mirrored, ok := s.fallback(ctx, userID, err)
		if !ok {
			return nil, fmt.Errorf("failed to list notifications: %w", err)
		}
		items, stale = mirrored, true
	} else if err := s.Mirror.ReplaceForUser(ctx, userID, items); err != nil {
		s.Logger.Warn("Failed to refresh notification mirror", zap.String("userID", userID), zap.Error(err))
	}
	for i := range items {
		if kind, id := items[i].Target(); id != "" {
			items[i].Link = &models.NotificationLink{Kind: kind, ID: id}
		}
	}
	return &models.NotificationFeed{
		Groups:      GroupByDate(items, s.Now(), s.Options.Location, s.Options.Locale),
		UnreadCount: CountUnread(items),
		Stale:       stale,
	}, nil
}

// fallback reads the mirror after a backend failure. Backend 4xx answers and
// cancelled requests are not retried locally.
func (s *DefaultNotificationService) fallback(ctx context.Context, userID string, cause error) ([]models.Notification, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	if code := apiclient.StatusCode(cause); code > 0 && code < http.StatusInternalServerError {
		return nil, false
	}
	mirrored, err := s.Mirror.ListByUser(ctx, userID)
	if err != nil {
		s.Logger.Error("Failed to read notification mirror", zap.String("userID", userID), zap.Error(err))
		return nil, false
	}
	if len(mirrored) == 0 {
		return nil, false
	}
	s.Logger.Warn("Backend unavailable for notifications, serving mirror",
		zap.String("userID", userID), zap.Error(cause))
	return mirrored, true
}

// SetStatus marks a notification read or unread. The mirror is updated first
// and restored if the backend refuses. A notification missing from the
// mirror is still sent to the backend.
func (s *DefaultNotificationService) SetStatus(ctx context.Context, userID, id string, status models.NotificationStatus) error {
	if status != models.NotificationRead && status != models.NotificationUnread {
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}
	var (
		prev    models.NotificationStatus
		applied bool
	)
	cmd := optimistic.Funcs{
		Label: "notification.status",
		ApplyFn: func(ctx context.Context) error {
			old, found, err := s.Mirror.SetStatus(ctx, userID, id, status)
			if err != nil {
				return err
			}
			prev, applied = old, found
			return nil
		},
		UndoFn: func(ctx context.Context) error {
			if !applied {
				return nil
			}
			_, _, err := s.Mirror.SetStatus(ctx, userID, id, prev)
			return err
		},
	}
	return optimistic.Run(ctx, s.Logger, cmd, func(ctx context.Context) error {
		if status == models.NotificationRead {
			return s.API.MarkNotificationRead(ctx, id)
		}
		return s.API.MarkNotificationUnread(ctx, id)
	})
}

// Delete removes a notification, reinserting it at its old position if the
// backend refuses.
func (s *DefaultNotificationService) Delete(ctx context.Context, userID, id string) error {
	var (
		removed  *models.Notification
		position int
	)
	cmd := optimistic.Funcs{
		Label: "notification.delete",
		ApplyFn: func(ctx context.Context) error {
			n, pos, err := s.Mirror.Delete(ctx, userID, id)
			if err != nil {
				return err
			}
			removed, position = n, pos
			return nil
		},
		UndoFn: func(ctx context.Context) error {
			if removed == nil {
				return nil
			}
			return s.Mirror.Insert(ctx, userID, *removed, position)
		},
	}
	return optimistic.Run(ctx, s.Logger, cmd, func(ctx context.Context) error {
		return s.API.DeleteNotification(ctx, id)
	})
}

// UnreadCount answers from the mirror without calling the backend.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	n, err := s.Mirror.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return int(n), nil
}
