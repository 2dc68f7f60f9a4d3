// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"time"

	"beu/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository is the local mirror of the reservations a user has
// listed through the gateway. The backend stays authoritative.
type ReservationRepository interface {
	ReplaceRange(ctx context.Context, userID, from, to string, reservations []models.Reservation) error
	ListByUser(ctx context.Context, userID, from, to string) ([]models.Reservation, error)
	LastSynced(ctx context.Context, userID string) (time.Time, error)
	EnsureIndexes(ctx context.Context) error
}

type reservationDoc struct {
	UserID             string    `bson:"userId"`
	SyncedAt           time.Time `bson:"syncedAt"`
	models.Reservation `bson:",inline"`
}

type syncMarker struct {
	UserID   string    `bson:"userId"`
	SyncedAt time.Time `bson:"syncedAt"`
}

type mongoReservationRepo struct {
	coll  *mongo.Collection
	syncs *mongo.Collection
	now   func() time.Time
}

// NewMongoReservationRepo constructs a MongoDB ReservationRepository.
func NewMongoReservationRepo(db *mongo.Database) ReservationRepository {
	return &mongoReservationRepo{
		coll:  db.Collection("reservations"),
		syncs: db.Collection("reservation_syncs"),
		now:   time.Now,
	}
}
