// File: database/repository/notification/crud.go
package notificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoNotificationRepo) ReplaceForUser(ctx context.Context, userID string, items []models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to clear mirrored notifications: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	syncedAt := time.Now().UTC()
	docs := make([]interface{}, len(items))
	for i, n := range items {
		docs[i] = notificationDoc{UserID: userID, SyncedAt: syncedAt, Position: i, Notification: n}
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to mirror notifications: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mirrored notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding mirrored notifications: %w", err)
	}
	items := make([]models.Notification, len(docs))
	for i, d := range docs {
		items[i] = d.Notification
	}
	return items, nil
}

func (r *mongoNotificationRepo) SetStatus(ctx context.Context, userID, id string, status models.NotificationStatus) (models.NotificationStatus, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var before notificationDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID, "id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to update notification %s: %w", id, err)
	}
	return before.Status, true, nil
}

func (r *mongoNotificationRepo) Insert(ctx context.Context, userID string, n models.Notification, position int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := notificationDoc{UserID: userID, SyncedAt: time.Now().UTC(), Position: position, Notification: n}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"userId": userID, "id": n.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification %s: %w", n.ID, err)
	}
	return nil
}

func (r *mongoNotificationRepo) Delete(ctx context.Context, userID, id string) (*models.Notification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var removed notificationDoc
	err := r.coll.FindOneAndDelete(ctx, bson.M{"userId": userID, "id": id}).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	return &removed.Notification, removed.Position, nil
}

func (r *mongoNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "status": models.NotificationUnread})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}
