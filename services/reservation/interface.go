package reservation

import (
	"context"
	"errors"
	"time"

	reservationRepo "beu/database/repository/reservation"
	"beu/models"
	"beu/services/calendar"

	"go.uber.org/zap"
)

var (
	ErrTerminal     = errors.New("reservation is cancelled or rejected and can no longer change")
	ErrInvalidToken = errors.New("invalid calendar feed token")
)

// ReservationAPI is the part of the backend client the service needs.
type ReservationAPI interface {
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	ConfirmReservation(ctx context.Context, id string) (*models.Reservation, error)
	RejectReservation(ctx context.Context, id string, req models.RejectReservationRequest) (*models.Reservation, error)
	GetCalendarConnection(ctx context.Context) (*models.CalendarConnection, error)
}

// MirrorRefresher queues a background refresh of a user's mirror.
type MirrorRefresher interface {
	EnqueueMirrorRefresh(ctx context.Context, userID, from, to string) error
}

// ReservationService proxies reservations and renders the calendar views.
type ReservationService interface {
	List(ctx context.Context, userID string, filter models.ReservationFilter) ([]models.Reservation, error)
	Get(ctx context.Context, id string) (*models.Reservation, error)
	Create(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	Confirm(ctx context.Context, id string) (*models.Reservation, error)
	Reject(ctx context.Context, id string, req models.RejectReservationRequest) (*models.Reservation, error)

	WeekStrip(ctx context.Context, userID string, q models.WeekStripQuery) (*models.WeekStripView, error)
	SelectDay(ctx context.Context, userID string, req models.WeekStripSelect) (*models.SelectionResult, error)
	MonthGrid(ctx context.Context, userID string, q models.MonthGridQuery) (*models.MonthGridView, error)
	TapMonth(req models.MonthTap) (*models.SelectionResult, error)
	Connection(ctx context.Context) (*models.CalendarConnection, error)

	FeedLink(userID string) (*models.CalendarFeedLink, error)
	Feed(ctx context.Context, token string) ([]byte, error)
}

// Config holds the knobs the service reads from application config.
type Config struct {
	PublicBaseURL string
	MirrorMaxAge  time.Duration
	FeedTTL       time.Duration
	// FeedPastDays and FeedFutureDays bound the dates exported in the feed.
	FeedPastDays   int
	FeedFutureDays int
}

type DefaultReservationService struct {
	API       ReservationAPI
	Mirror    reservationRepo.ReservationRepository
	Refresher MirrorRefresher
	Options   calendar.Options
	Config    Config
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewDefaultReservationService(
	api ReservationAPI,
	mirror reservationRepo.ReservationRepository,
	refresher MirrorRefresher,
	opts calendar.Options,
	cfg Config,
	logger *zap.Logger,
) *DefaultReservationService {
	if cfg.FeedTTL <= 0 {
		cfg.FeedTTL = 365 * 24 * time.Hour
	}
	if cfg.FeedPastDays <= 0 {
		cfg.FeedPastDays = 90
	}
	if cfg.FeedFutureDays <= 0 {
		cfg.FeedFutureDays = 365
	}
	return &DefaultReservationService{
		API:       api,
		Mirror:    mirror,
		Refresher: refresher,
		Options:   opts.WithDefaults(),
		Config:    cfg,
		Logger:    logger,
		Now:       time.Now,
	}
}
