// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"
	"time"

	"beu/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository is the local mirror optimistic notification updates
// are applied to before the backend confirms them.
type NotificationRepository interface {
	ReplaceForUser(ctx context.Context, userID string, items []models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	// SetStatus returns the previous status; found is false when the
	// notification is not mirrored.
	SetStatus(ctx context.Context, userID, id string, status models.NotificationStatus) (prev models.NotificationStatus, found bool, err error)
	// Insert mirrors n at the given list position.
	Insert(ctx context.Context, userID string, n models.Notification, position int) error
	// Delete returns the removed notification and its position, or nil when it
	// was not mirrored.
	Delete(ctx context.Context, userID, id string) (*models.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type notificationDoc struct {
	UserID              string    `bson:"userId"`
	SyncedAt            time.Time `bson:"syncedAt"`
	Position            int       `bson:"position"`
	models.Notification `bson:",inline"`
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a MongoDB NotificationRepository.
func NewMongoNotificationRepo(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepo{coll: db.Collection("notifications")}
}
