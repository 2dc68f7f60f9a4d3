package models

// DayCell is one day in the horizontal week strip.
type DayCell struct {
	Date     string   `json:"date"`
	Weekday  string   `json:"weekday"`
	Day      int      `json:"day"`
	Disabled bool     `json:"disabled"`
	Selected bool     `json:"selected"`
	Today    bool     `json:"today"`
	Dots     []string `json:"dots,omitempty"`
}

// Week is one page of the week strip, Monday first.
type Week struct {
	Index int       `json:"index"`
	Start string    `json:"start"`
	Label string    `json:"label"`
	Days  []DayCell `json:"days"`
}

// WeekStripView is the response for a page of the week strip.
type WeekStripView struct {
	SelectedDate string `json:"selected_date,omitempty"`
	InitialIndex int    `json:"initial_index"`
	VisibleIndex int    `json:"visible_index"`
	WindowSize   int    `json:"window_size"`
	Label        string `json:"label"`
	Weeks        []Week `json:"weeks"`
}

// WeekStripQuery describes the strip requested by a client.
type WeekStripQuery struct {
	SelectedDate     string `form:"selected" json:"selected_date,omitempty"`
	MinDate          string `form:"min" json:"min_date,omitempty"`
	MaxDate          string `form:"max" json:"max_date,omitempty"`
	DisabledWeekdays []int  `form:"disabled" json:"disabled_weekdays,omitempty"`
	Index            *int   `form:"index" json:"index,omitempty"`
	Span             int    `form:"span" json:"span,omitempty"`
}

// WeekStripSelect selects a day on the strip.
type WeekStripSelect struct {
	WeekStripQuery
	Date string `json:"date" binding:"required"`
}

// SelectionResult reports the outcome of tapping a day.
type SelectionResult struct {
	Changed      bool   `json:"changed"`
	SelectedDate string `json:"selected_date,omitempty"`
	Closed       bool   `json:"closed,omitempty"`
}

// MonthCell is one of the 42 cells of the month grid.
type MonthCell struct {
	Date     string   `json:"date"`
	Day      int      `json:"day"`
	InMonth  bool     `json:"in_month"`
	Today    bool     `json:"today"`
	Selected bool     `json:"selected"`
	Dots     []string `json:"dots,omitempty"`
	Overflow int      `json:"overflow,omitempty"`
}

// MonthGridView is a 6x7 month grid.
type MonthGridView struct {
	Year         int         `json:"year"`
	Month        int         `json:"month"`
	Label        string      `json:"label"`
	Weekdays     []string    `json:"weekdays"`
	SelectedDate string      `json:"selected_date,omitempty"`
	Cells        []MonthCell `json:"cells"`
}

// MonthGridQuery describes the month requested by a client. Nav is -1/0/+1.
type MonthGridQuery struct {
	Year         int    `form:"year" json:"year"`
	Month        int    `form:"month" json:"month"`
	Nav          int    `form:"nav" json:"nav,omitempty"`
	SelectedDate string `form:"selected" json:"selected_date,omitempty"`
}

// MonthTap taps a cell of the month grid.
type MonthTap struct {
	Date string `json:"date" binding:"required"`
}

// CalendarConnection is the external calendar status card.
type CalendarConnection struct {
	Provider     string `json:"provider"`
	Connected    bool   `json:"connected"`
	Email        string `json:"email,omitempty"`
	LastSyncedAt string `json:"last_synced_at,omitempty"`
}

// CalendarFeedLink is a subscribable iCalendar URL.
type CalendarFeedLink struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}
