package calendar

import "time"

const (
	// DefaultWindowRadius is the number of weeks materialised on each side of today.
	DefaultWindowRadius = 260
	// MaxDots caps the status dots rendered on a single day.
	MaxDots = 3
	// GridCells is the size of the month grid (6 rows of 7 days).
	GridCells = 42
	// DefaultPrimaryColor is the theme colour for unknown statuses.
	DefaultPrimaryColor = "#8b5cf6"
)

// Options carries the presentation context that calendar views need. It is
// passed explicitly instead of being read from globals.
type Options struct {
	Location     *time.Location
	Locale       *Locale
	PrimaryColor string
	WindowRadius int

	// GridStartsSunday switches month grid columns from Monday-first to Sunday-first.
	GridStartsSunday bool
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Locale == nil {
		o.Locale = MustLocale(DefaultLocale)
	}
	if o.PrimaryColor == "" {
		o.PrimaryColor = DefaultPrimaryColor
	}
	if o.WindowRadius <= 0 {
		o.WindowRadius = DefaultWindowRadius
	}
	return o
}

// GridWeekStart returns the first column weekday of the month grid.
func (o Options) GridWeekStart() time.Weekday {
	if o.GridStartsSunday {
		return time.Sunday
	}
	return time.Monday
}
