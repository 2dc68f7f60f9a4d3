package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"beu/models"
)

// DateLayout is the ISO calendar date used on the wire.
const DateLayout = "2006-01-02"

// ErrInvalidInput marks malformed dates and calendar parameters.
var ErrInvalidInput = errors.New("invalid calendar input")

// ParseDate parses an ISO date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// FormatDate renders t as an ISO date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday starting the week that contains t.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int((day.Weekday()+6)%7))
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTimestamp parses the ISO timestamps the backend emits. Values without
// an offset are read in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// ReservationIndex groups reservations by ISO date, keeping input order.
type ReservationIndex map[string][]models.Reservation

// IndexReservations builds a ReservationIndex.
func IndexReservations(reservations []models.Reservation) ReservationIndex {
	ix := make(ReservationIndex)
	for _, r := range reservations {
		ix[r.Date] = append(ix[r.Date], r)
	}
	return ix
}

// StatusDots returns one colour per distinct status on date, at most max.
func (ix ReservationIndex) StatusDots(date, fallback string, max int) []string {
	var dots []string
	seen := make(map[models.ReservationStatus]bool)
	for _, r := range ix[date] {
		if seen[r.Status] {
			continue
		}
		seen[r.Status] = true
		dots = append(dots, r.Status.Color(fallback))
		if len(dots) == max {
			break
		}
	}
	return dots
}

// Dots returns one colour per reservation on date, at most max, and how many
// reservations did not fit.
func (ix ReservationIndex) Dots(date, fallback string, max int) ([]string, int) {
	list := ix[date]
	var dots []string
	for i, r := range list {
		if i == max {
			break
		}
		dots = append(dots, r.Status.Color(fallback))
	}
	overflow := len(list) - max
	if overflow < 0 {
		overflow = 0
	}
	return dots, overflow
}
