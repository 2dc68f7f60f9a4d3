package calendar

import (
	"errors"
	"fmt"
	"time"

	"beu/models"
)

// ErrDayDisabled is returned when a disabled day is selected.
var ErrDayDisabled = errors.New("day is disabled")

// WeekWindow is the finite run of week starts around today's week.
type WeekWindow struct {
	starts     []time.Time
	todayIndex int
}

// NewWeekWindow materialises 2*radius+1 week starts centred on today's week.
func NewWeekWindow(today time.Time, radius int) *WeekWindow {
	anchor := WeekStart(today)
	starts := make([]time.Time, 2*radius+1)
	for i := range starts {
		starts[i] = anchor.AddDate(0, 0, 7*(i-radius))
	}
	return &WeekWindow{starts: starts, todayIndex: radius}
}

// Len returns the number of weeks in the window.
func (w *WeekWindow) Len() int { return len(w.starts) }

// TodayIndex returns the index of the week containing today.
func (w *WeekWindow) TodayIndex() int { return w.todayIndex }

// Start returns the Monday of week i.
func (w *WeekWindow) Start(i int) time.Time { return w.starts[w.Clamp(i)] }

// Clamp bounds i to the window.
func (w *WeekWindow) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(w.starts) {
		return len(w.starts) - 1
	}
	return i
}

// IndexOf returns the week containing t, clamped to the nearest boundary.
func (w *WeekWindow) IndexOf(t time.Time) int {
	return w.Clamp(daysBetween(w.starts[0], WeekStart(t)) / 7)
}

// StripConfig is the input of a week strip.
type StripConfig struct {
	SelectedDate     string
	MinDate          string
	MaxDate          string
	DisabledWeekdays []int // 0 = Sunday … 6 = Saturday
	Reservations     []models.Reservation
	OnSelect         func(date string)
}

// WeekStrip is the horizontally paged week calendar.
type WeekStrip struct {
	opts         Options
	window       *WeekWindow
	today        string
	selected     string
	minDate      *time.Time
	maxDate      *time.Time
	disabled     [7]bool
	reservations ReservationIndex
	initial      int
	visible      int
	onSelect     func(date string)
}

// NewWeekStrip builds a strip anchored on now.
func NewWeekStrip(now time.Time, cfg StripConfig, opts Options) (*WeekStrip, error) {
	opts = opts.WithDefaults()
	now = now.In(opts.Location)
	s := &WeekStrip{
		opts:         opts,
		window:       NewWeekWindow(now, opts.WindowRadius),
		today:        FormatDate(now),
		reservations: IndexReservations(cfg.Reservations),
		onSelect:     cfg.OnSelect,
	}
	for _, wd := range cfg.DisabledWeekdays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("%w: disabled weekday %d out of range 0..6", ErrInvalidInput, wd)
		}
		s.disabled[wd] = true
	}
	var err error
	if s.minDate, err = optionalDate(cfg.MinDate, opts.Location); err != nil {
		return nil, err
	}
	if s.maxDate, err = optionalDate(cfg.MaxDate, opts.Location); err != nil {
		return nil, err
	}

	s.initial = s.window.TodayIndex()
	if cfg.SelectedDate != "" {
		sel, err := ParseDate(cfg.SelectedDate, opts.Location)
		if err != nil {
			return nil, err
		}
		s.selected = FormatDate(sel)
		s.initial = s.window.IndexOf(sel)
	}
	s.visible = s.initial
	return s, nil
}

func optionalDate(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDate(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Window exposes the underlying week window.
func (s *WeekStrip) Window() *WeekWindow { return s.window }

// InitialIndex is the week first shown: the selected week or today's week.
func (s *WeekStrip) InitialIndex() int { return s.initial }

// VisibleIndex is the week currently paged to.
func (s *WeekStrip) VisibleIndex() int { return s.visible }

// Selected returns the selected ISO date, if any.
func (s *WeekStrip) Selected() string { return s.selected }

// Page moves to week index i (clamped) and returns the index now visible.
func (s *WeekStrip) Page(i int) int {
	s.visible = s.window.Clamp(i)
	return s.visible
}

// Label is the "Month Year" of the visible week's start.
func (s *WeekStrip) Label() string {
	return s.opts.Locale.MonthYear(s.window.Start(s.visible))
}

// IsDisabled reports whether day cannot be selected.
func (s *WeekStrip) IsDisabled(day time.Time) bool {
	if s.disabled[day.Weekday()] {
		return true
	}
	d := StartOfDay(day)
	if s.minDate != nil && d.Before(*s.minDate) {
		return true
	}
	if s.maxDate != nil && d.After(*s.maxDate) {
		return true
	}
	return false
}

// Select selects an enabled day and fires the selection callback.
func (s *WeekStrip) Select(date string) error {
	day, err := ParseDate(date, s.opts.Location)
	if err != nil {
		return err
	}
	if s.IsDisabled(day) {
		return ErrDayDisabled
	}
	s.selected = FormatDate(day)
	if s.onSelect != nil {
		s.onSelect(s.selected)
	}
	return nil
}

// Week renders week i.
func (s *WeekStrip) Week(i int) models.Week {
	i = s.window.Clamp(i)
	start := s.window.Start(i)
	week := models.Week{
		Index: i,
		Start: FormatDate(start),
		Label: s.opts.Locale.MonthYear(start),
		Days:  make([]models.DayCell, 0, 7),
	}
	for d := 0; d < 7; d++ {
		day := start.AddDate(0, 0, d)
		iso := FormatDate(day)
		week.Days = append(week.Days, models.DayCell{
			Date:     iso,
			Weekday:  s.opts.Locale.Weekday(day.Weekday()),
			Day:      day.Day(),
			Disabled: s.IsDisabled(day),
			Selected: iso == s.selected,
			Today:    iso == s.today,
			Dots:     s.reservations.StatusDots(iso, s.opts.PrimaryColor, MaxDots),
		})
	}
	return week
}

// View renders span weeks starting at the visible week.
func (s *WeekStrip) View(span int) models.WeekStripView {
	if span <= 0 {
		span = 1
	}
	view := models.WeekStripView{
		SelectedDate: s.selected,
		InitialIndex: s.initial,
		VisibleIndex: s.visible,
		WindowSize:   s.window.Len(),
		Label:        s.Label(),
	}
	for i := s.visible; i < s.visible+span && i < s.window.Len(); i++ {
		view.Weeks = append(view.Weeks, s.Week(i))
	}
	return view
}

// VisibleRange returns the first and last ISO dates covered by span weeks
// from the visible week.
func (s *WeekStrip) VisibleRange(span int) (string, string) {
	if span <= 0 {
		span = 1
	}
	last := s.window.Clamp(s.visible + span - 1)
	return FormatDate(s.window.Start(s.visible)), FormatDate(s.window.Start(last).AddDate(0, 0, 6))
}

// SetReservations replaces the reservations used for day dots.
func (s *WeekStrip) SetReservations(reservations []models.Reservation) {
	s.reservations = IndexReservations(reservations)
}
