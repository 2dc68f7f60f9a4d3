package calendar

import (
	"errors"
	"testing"
	"time"

	"beu/models"
)

func TestWeekStartIsMondayAndIdempotent(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		loc = time.UTC
	}
	start := time.Date(2023, 12, 1, 15, 30, 0, 0, loc)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		ws := WeekStart(d)
		if ws.Weekday() != time.Monday {
			t.Fatalf("WeekStart(%s) = %s, a %s", FormatDate(d), FormatDate(ws), ws.Weekday())
		}
		if again := WeekStart(ws); !again.Equal(ws) {
			t.Fatalf("WeekStart not idempotent for %s: %s then %s", FormatDate(d), FormatDate(ws), FormatDate(again))
		}
		if diff := daysBetween(ws, d); diff < 0 || diff > 6 {
			t.Fatalf("WeekStart(%s) = %s is %d days away", FormatDate(d), FormatDate(ws), diff)
		}
	}
}

func TestWeekStartKnownDate(t *testing.T) {
	d := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	if got := FormatDate(WeekStart(d)); got != "2024-03-11" {
		t.Errorf("WeekStart(2024-03-14) = %s, want 2024-03-11", got)
	}
	sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(WeekStart(sunday)); got != "2024-03-11" {
		t.Errorf("WeekStart(2024-03-17) = %s, want 2024-03-11", got)
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "2024-3-1", "14/03/2024", "2024-02-30"} {
		if _, err := ParseDate(raw, time.UTC); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidInput", raw, err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2024-06-15T10:00:00Z", "2024-06-15 04:00", true},
		{"2024-06-15T10:00:00.123456", "2024-06-15 10:00", true},
		{"2024-06-15T10:00:00-06:00", "2024-06-15 10:00", true},
		{"2024-06-15 10:00:00", "2024-06-15 10:00", true},
		{"2024-01-01", "2024-01-01 00:00", true},
		{"yesterday", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseTimestamp(tc.raw, loc)
		if ok != tc.ok {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			continue
		}
		if ok && got.Format("2006-01-02 15:04") != tc.want {
			t.Errorf("ParseTimestamp(%q) = %s, want %s", tc.raw, got.Format("2006-01-02 15:04"), tc.want)
		}
	}
}

func TestReservationIndexDots(t *testing.T) {
	ix := IndexReservations([]models.Reservation{
		{ID: "1", Date: "2024-03-14", Status: models.StatusConfirmed},
		{ID: "2", Date: "2024-03-14", Status: models.StatusConfirmed},
		{ID: "3", Date: "2024-03-14", Status: models.StatusPending},
		{ID: "4", Date: "2024-03-14", Status: "NO_SHOW"},
		{ID: "5", Date: "2024-03-14", Status: models.StatusCancelled},
		{ID: "6", Date: "2024-03-15", Status: models.StatusCompleted},
	})

	status := ix.StatusDots("2024-03-14", "#primary", MaxDots)
	want := []string{"#10b981", "#f59e0b", "#primary"}
	if len(status) != len(want) {
		t.Fatalf("StatusDots = %v, want %v", status, want)
	}
	for i := range want {
		if status[i] != want[i] {
			t.Errorf("StatusDots[%d] = %s, want %s", i, status[i], want[i])
		}
	}

	dots, overflow := ix.Dots("2024-03-14", "#primary", MaxDots)
	if len(dots) != 3 || overflow != 2 {
		t.Errorf("Dots = %v (+%d), want 3 dots and +2", dots, overflow)
	}
	if dots, overflow := ix.Dots("2024-03-16", "#primary", MaxDots); len(dots) != 0 || overflow != 0 {
		t.Errorf("empty day Dots = %v (+%d)", dots, overflow)
	}
}
