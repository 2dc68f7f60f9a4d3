package calendar

import (
	"time"

	"beu/models"
)

// MonthDates returns the 42 dates shown for month, starting on weekStart and
// padded with the neighbouring months' days.
func MonthDates(year int, month time.Month, weekStart time.Weekday, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	gridStart := first.AddDate(0, 0, -offset)

	dates := make([]time.Time, GridCells)
	for i := range dates {
		dates[i] = gridStart.AddDate(0, 0, i)
	}
	return dates
}

// MonthPicker is the calendar modal: a month grid with its own navigation.
type MonthPicker struct {
	opts         Options
	today        string
	year         int
	month        time.Month
	selected     string
	open         bool
	reservations ReservationIndex
	onSelect     func(date string)
}

// NewMonthPicker opens the modal on the month of ref.
func NewMonthPicker(now, ref time.Time, selected string, reservations []models.Reservation, onSelect func(string), opts Options) *MonthPicker {
	opts = opts.WithDefaults()
	ref = ref.In(opts.Location)
	return &MonthPicker{
		opts:         opts,
		today:        FormatDate(now.In(opts.Location)),
		year:         ref.Year(),
		month:        ref.Month(),
		selected:     selected,
		open:         true,
		reservations: IndexReservations(reservations),
		onSelect:     onSelect,
	}
}

// Month returns the displayed year and month.
func (p *MonthPicker) Month() (int, time.Month) { return p.year, p.month }

// Open reports whether the modal is still showing.
func (p *MonthPicker) Open() bool { return p.open }

// Selected returns the selected ISO date, if any.
func (p *MonthPicker) Selected() string { return p.selected }

// Prev shows the previous month. The selection is untouched.
func (p *MonthPicker) Prev() { p.shift(-1) }

// Next shows the next month. The selection is untouched.
func (p *MonthPicker) Next() { p.shift(1) }

func (p *MonthPicker) shift(n int) {
	t := time.Date(p.year, p.month+time.Month(n), 1, 0, 0, 0, 0, p.opts.Location)
	p.year, p.month = t.Year(), t.Month()
}

// Range returns the first and last ISO dates of the displayed grid.
func (p *MonthPicker) Range() (string, string) {
	dates := MonthDates(p.year, p.month, p.opts.GridWeekStart(), p.opts.Location)
	return FormatDate(dates[0]), FormatDate(dates[len(dates)-1])
}

// SetReservations replaces the reservations used for cell dots.
func (p *MonthPicker) SetReservations(reservations []models.Reservation) {
	p.reservations = IndexReservations(reservations)
}

// Tap selects any cell, including padding days, fires the callback and
// closes the modal.
func (p *MonthPicker) Tap(date string) error {
	day, err := ParseDate(date, p.opts.Location)
	if err != nil {
		return err
	}
	p.selected = FormatDate(day)
	if p.onSelect != nil {
		p.onSelect(p.selected)
	}
	p.open = false
	return nil
}

// Grid renders the displayed month.
func (p *MonthPicker) Grid() models.MonthGridView {
	view := models.MonthGridView{
		Year:         p.year,
		Month:        int(p.month),
		Label:        p.opts.Locale.MonthYear(time.Date(p.year, p.month, 1, 0, 0, 0, 0, p.opts.Location)),
		SelectedDate: p.selected,
		Cells:        make([]models.MonthCell, 0, GridCells),
	}
	for i := 0; i < 7; i++ {
		view.Weekdays = append(view.Weekdays, p.opts.Locale.Weekday((p.opts.GridWeekStart()+time.Weekday(i))%7))
	}
	for _, day := range MonthDates(p.year, p.month, p.opts.GridWeekStart(), p.opts.Location) {
		iso := FormatDate(day)
		dots, overflow := p.reservations.Dots(iso, p.opts.PrimaryColor, MaxDots)
		view.Cells = append(view.Cells, models.MonthCell{
			Date:     iso,
			Day:      day.Day(),
			InMonth:  day.Month() == p.month,
			Today:    iso == p.today,
			Selected: iso == p.selected,
			Dots:     dots,
			Overflow: overflow,
		})
	}
	return view
}
