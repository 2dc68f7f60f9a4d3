// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"beu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// dateRange builds the filter for ISO dates in [from, to]; empty bounds are open.
func dateRange(userID, from, to string) bson.M {
	filter := bson.M{"userId": userID}
	bounds := bson.M{}
	if from != "" {
		bounds["$gte"] = from
	}
	if to != "" {
		bounds["$lte"] = to
	}
	if len(bounds) > 0 {
		filter["date"] = bounds
	}
	return filter
}

func (r *mongoReservationRepo) ReplaceRange(ctx context.Context, userID, from, to string, reservations []models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, dateRange(userID, from, to)); err != nil {
		return fmt.Errorf("failed to clear mirrored reservations: %w", err)
	}

	syncedAt := r.now().UTC()
	var (
		docs []interface{}
		ids  []string
	)
	for _, res := range reservations {
		if !inRange(res.Date, from, to) {
			continue
		}
		docs = append(docs, reservationDoc{UserID: userID, SyncedAt: syncedAt, Reservation: res})
		ids = append(ids, res.ID)
	}
	if len(docs) > 0 {
		// A rescheduled reservation may still be mirrored under its old date.
		if _, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID, "id": bson.M{"$in": ids}}); err != nil {
			return fmt.Errorf("failed to clear moved reservations: %w", err)
		}
		if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
			return fmt.Errorf("failed to mirror reservations: %w", err)
		}
	}

	_, err := r.syncs.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": syncMarker{UserID: userID, SyncedAt: syncedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record reservation sync: %w", err)
	}
	return nil
}

// inRange compares ISO dates lexicographically.
func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
