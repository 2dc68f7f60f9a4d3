package reservation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"beu/models"
	"beu/services/calendar"
	"beu/utils"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

const clockLayout = "15:04"

// FeedLink signs a read-only token for userID's iCalendar feed.
func (s *DefaultReservationService) FeedLink(userID string) (*models.CalendarFeedLink, error) {
	token, err := utils.GenerateToken(userID, utils.FeedAudience, s.Config.FeedTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign feed token: %w", err)
	}
	base := strings.TrimRight(s.Config.PublicBaseURL, "/")
	return &models.CalendarFeedLink{
		URL:       base + "/calendar/" + url.PathEscape(token) + "/reservations.ics",
		ExpiresAt: s.Now().Add(s.Config.FeedTTL).Unix(),
	}, nil
}

// Feed renders the mirrored reservations as an iCalendar document. A stale
// mirror is still served while a refresh is queued.
func (s *DefaultReservationService) Feed(ctx context.Context, token string) ([]byte, error) {
	userID, err := utils.ExtractFeedSubject(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	today := calendar.StartOfDay(s.Now().In(s.Options.Location))
	from := calendar.FormatDate(today.AddDate(0, 0, -s.Config.FeedPastDays))
	to := calendar.FormatDate(today.AddDate(0, 0, s.Config.FeedFutureDays))

	s.refreshIfStale(ctx, userID, from, to)

	items, err := s.Mirror.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return []byte(s.buildCalendar(items).Serialize()), nil
}

func (s *DefaultReservationService) refreshIfStale(ctx context.Context, userID, from, to string) {
	if s.Refresher == nil {
		return
	}
	synced, err := s.Mirror.LastSynced(ctx, userID)
	if err != nil {
		s.Logger.Warn("Failed to read mirror age", zap.String("userID", userID), zap.Error(err))
		return
	}
	if !synced.IsZero() && s.Now().Sub(synced) <= s.Config.MirrorMaxAge {
		return
	}
	if err := s.Refresher.EnqueueMirrorRefresh(ctx, userID, from, to); err != nil {
		s.Logger.Error("Failed to enqueue mirror refresh", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultReservationService) buildCalendar(items []models.Reservation) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//BE-U//Reservations//ES")
	cal.SetXWRCalName("BE-U")
	cal.SetXWRTimezone(s.Options.Location.String())

	stamp := s.Now().UTC()
	for _, r := range items {
		start, end, ok := s.eventBounds(r)
		if !ok {
			s.Logger.Debug("Skipping reservation without a usable date", zap.String("reservationID", r.ID))
			continue
		}
		ev := cal.AddEvent(r.ID + "@beu")
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(eventSummary(r))
		if r.Notes != "" {
			ev.SetDescription(r.Notes)
		}
		ev.SetStatus(eventStatus(r.Status))
		ev.SetProperty(ics.ComponentProperty("COLOR"), r.Status.Color(s.Options.PrimaryColor))
	}
	return cal
}

// eventBounds resolves start and end. A missing or non-increasing end time
// falls back to a one hour event.
func (s *DefaultReservationService) eventBounds(r models.Reservation) (time.Time, time.Time, bool) {
	day, err := calendar.ParseDate(r.Date, s.Options.Location)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start := atClock(day, r.Time)
	end := atClock(day, r.EndTime)
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end, true
}

func atClock(day time.Time, clock string) time.Time {
	if len(clock) > 5 {
		clock = clock[:5]
	}
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

func eventSummary(r models.Reservation) string {
	parts := []string{}
	if r.ServiceName != "" {
		parts = append(parts, r.ServiceName)
	}
	if r.ProviderName != "" {
		parts = append(parts, r.ProviderName)
	} else if r.ClientName != "" {
		parts = append(parts, r.ClientName)
	}
	if len(parts) == 0 {
		return "Reserva"
	}
	return strings.Join(parts, " · ")
}

func eventStatus(status models.ReservationStatus) ics.ObjectStatus {
	switch status {
	case models.StatusPending:
		return ics.ObjectStatusTentative
	case models.StatusCancelled, models.StatusRejected:
		return ics.ObjectStatusCancelled
	default:
		return ics.ObjectStatusConfirmed
	}
}
