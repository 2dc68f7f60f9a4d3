package reservation

import (
	"context"
	"fmt"

	"beu/models"
	"beu/services/calendar"
	"beu/services/schedule"

	"go.uber.org/zap"
)

// List proxies the listing and mirrors bounded ranges for the calendar feed.
func (s *DefaultReservationService) List(ctx context.Context, userID string, filter models.ReservationFilter) ([]models.Reservation, error) {
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := calendar.ParseDate(d, s.Options.Location); err != nil {
			return nil, err
		}
	}
	items, err := s.API.ListReservations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if filter.From != "" && filter.To != "" && filter.Status == "" {
		s.mirror(ctx, userID, filter.From, filter.To, items)
	}
	return items, nil
}

func (s *DefaultReservationService) mirror(ctx context.Context, userID, from, to string, items []models.Reservation) {
	if err := s.Mirror.ReplaceRange(ctx, userID, from, to, items); err != nil {
		s.Logger.Warn("Failed to mirror reservations",
			zap.String("userID", userID), zap.String("from", from), zap.String("to", to), zap.Error(err))
	}
}

func (s *DefaultReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return s.API.GetReservation(ctx, id)
}

func (s *DefaultReservationService) Create(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	if _, err := calendar.ParseDate(req.Date, s.Options.Location); err != nil {
		return nil, err
	}
	if !schedule.ValidClock(req.Time) {
		return nil, fmt.Errorf("time %q: %w", req.Time, schedule.ErrInvalidTime)
	}
	return s.API.CreateReservation(ctx, req)
}

// Confirm refuses terminal reservations before calling the backend.
func (s *DefaultReservationService) Confirm(ctx context.Context, id string) (*models.Reservation, error) {
	if err := s.ensureOpen(ctx, id); err != nil {
		return nil, err
	}
	return s.API.ConfirmReservation(ctx, id)
}

// Reject refuses terminal reservations before calling the backend.
func (s *DefaultReservationService) Reject(ctx context.Context, id string, req models.RejectReservationRequest) (*models.Reservation, error) {
	if err := s.ensureOpen(ctx, id); err != nil {
		return nil, err
	}
	return s.API.RejectReservation(ctx, id, req)
}

func (s *DefaultReservationService) ensureOpen(ctx context.Context, id string) error {
	current, err := s.API.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	if current.Status.Terminal() {
		return ErrTerminal
	}
	return nil
}

func (s *DefaultReservationService) Connection(ctx context.Context) (*models.CalendarConnection, error) {
	return s.API.GetCalendarConnection(ctx)
}
