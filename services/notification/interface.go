package notification

import (
	"context"
	"errors"

	"beu/models"
)

// ErrInvalidStatus is returned for a status other than read or unread.
var ErrInvalidStatus = errors.New("status must be read or unread")

// NotificationAPI is the part of the backend client the service needs.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkNotificationUnread(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
}

// NotificationService serves grouped notifications and applies read/unread
// and delete optimistically.
type NotificationService interface {
	List(ctx context.Context, userID string) (*models.NotificationFeed, error)
	SetStatus(ctx context.Context, userID, id string, status models.NotificationStatus) error
	Delete(ctx context.Context, userID, id string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}
