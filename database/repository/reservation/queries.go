// File: database/repository/reservation/queries.go
package reservationRepo

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

func (r *mongoReservationRepo) ListByUser(ctx context.Context, userID, from, to string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, dateRange(userID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mirrored reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding mirrored reservations: %w", err)
	}
	reservations := make([]models.Reservation, len(docs))
	for i, d := range docs {
		reservations[i] = d.Reservation
	}
	return reservations, nil
}

// LastSynced returns the zero time when the user's mirror was never filled.
func (r *mongoReservationRepo) LastSynced(ctx context.Context, userID string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var marker syncMarker
	err := r.syncs.FindOne(ctx, bson.M{"userId": userID}).Decode(&marker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read reservation sync marker: %w", err)
	}
	return marker.SyncedAt, nil
}
