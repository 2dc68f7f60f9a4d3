package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beu/models"
	"beu/services/calendar"

	"go.uber.org/zap"
)

const maxStripSpan = 8

// rangeReservations loads reservations for a visible range. When the
// backend is unreachable the mirror is served instead.
func (s *DefaultReservationService) rangeReservations(ctx context.Context, userID, from, to string) []models.Reservation {
	items, err := s.API.ListReservations(ctx, models.ReservationFilter{From: from, To: to})
	if err == nil {
		s.mirror(ctx, userID, from, to, items)
		return items
	}
	if ctx.Err() != nil {
		return nil
	}
	s.Logger.Warn("Backend unavailable for calendar view, serving mirror",
		zap.String("userID", userID), zap.Error(err))
	mirrored, mErr := s.Mirror.ListByUser(ctx, userID, from, to)
	if mErr != nil {
		s.Logger.Error("Failed to read reservation mirror", zap.String("userID", userID), zap.Error(mErr))
		return nil
	}
	return mirrored
}

func (s *DefaultReservationService) strip(q models.WeekStripQuery, onSelect func(string)) (*calendar.WeekStrip, error) {
	strip, err := calendar.NewWeekStrip(s.Now(), calendar.StripConfig{
		SelectedDate:     q.SelectedDate,
		MinDate:          q.MinDate,
		MaxDate:          q.MaxDate,
		DisabledWeekdays: q.DisabledWeekdays,
		OnSelect:         onSelect,
	}, s.Options)
	if err != nil {
		return nil, err
	}
	if q.Index != nil {
		strip.Page(*q.Index)
	}
	return strip, nil
}

func clampSpan(span int) int {
	if span <= 0 {
		return 1
	}
	if span > maxStripSpan {
		return maxStripSpan
	}
	return span
}

// WeekStrip renders the requested page of the week strip with dots.
func (s *DefaultReservationService) WeekStrip(ctx context.Context, userID string, q models.WeekStripQuery) (*models.WeekStripView, error) {
	strip, err := s.strip(q, nil)
	if err != nil {
		return nil, err
	}
	span := clampSpan(q.Span)
	from, to := strip.VisibleRange(span)
	strip.SetReservations(s.rangeReservations(ctx, userID, from, to))
	view := strip.View(span)
	return &view, nil
}

// SelectDay selects a strip day. A disabled day leaves the selection as is.
func (s *DefaultReservationService) SelectDay(ctx context.Context, userID string, req models.WeekStripSelect) (*models.SelectionResult, error) {
	var fired string
	strip, err := s.strip(req.WeekStripQuery, func(date string) { fired = date })
	if err != nil {
		return nil, err
	}
	err = strip.Select(req.Date)
	if errors.Is(err, calendar.ErrDayDisabled) {
		return &models.SelectionResult{Changed: false, SelectedDate: strip.Selected()}, nil
	}
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("Week strip day selected", zap.String("userID", userID), zap.String("date", fired))
	return &models.SelectionResult{Changed: true, SelectedDate: fired}, nil
}

// MonthGrid renders the 42-cell grid for the requested month, applying the
// optional prev/next navigation step.
func (s *DefaultReservationService) MonthGrid(ctx context.Context, userID string, q models.MonthGridQuery) (*models.MonthGridView, error) {
	loc := s.Options.Location
	now := s.Now().In(loc)
	ref := now
	if q.SelectedDate != "" {
		sel, err := calendar.ParseDate(q.SelectedDate, loc)
		if err != nil {
			return nil, err
		}
		ref = sel
	}
	if q.Year != 0 || q.Month != 0 {
		if q.Month < 1 || q.Month > 12 || q.Year < 1 {
			return nil, fmt.Errorf("%w: month must be 1..12 with a positive year", calendar.ErrInvalidInput)
		}
		ref = time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, loc)
	}

	picker := calendar.NewMonthPicker(now, ref, q.SelectedDate, nil, nil, s.Options)
	switch {
	case q.Nav < 0:
		picker.Prev()
	case q.Nav > 0:
		picker.Next()
	}
	from, to := picker.Range()
	picker.SetReservations(s.rangeReservations(ctx, userID, from, to))
	view := picker.Grid()
	return &view, nil
}

// TapMonth selects any grid date and closes the modal.
func (s *DefaultReservationService) TapMonth(req models.MonthTap) (*models.SelectionResult, error) {
	picker := calendar.NewMonthPicker(s.Now(), s.Now(), "", nil, nil, s.Options)
	if err := picker.Tap(req.Date); err != nil {
		return nil, err
	}
	return &models.SelectionResult{Changed: true, SelectedDate: picker.Selected(), Closed: !picker.Open()}, nil
}
