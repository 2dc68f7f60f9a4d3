package calendar

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is used when a requested locale is not bundled.
const DefaultLocale = "es"

// Locale holds the labels used by the calendar views and notification groups.
type Locale struct {
	Code          string   `yaml:"code"`
	Today         string   `yaml:"today"`
	Yesterday     string   `yaml:"yesterday"`
	Undated       string   `yaml:"undated"`
	MonthsShort   []string `yaml:"months_short"`
	MonthsLong    []string `yaml:"months_long"`
	WeekdaysShort []string `yaml:"weekdays_short"` // Sunday first
	WeekdaysLong  []string `yaml:"weekdays_long"`  // Sunday first
}

// LoadLocale reads a bundled locale by code.
func LoadLocale(code string) (*Locale, error) {
	raw, err := localeFS.ReadFile("locales/" + code + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("locale %q not bundled: %w", code, err)
	}
	var l Locale
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", code, err)
	}
	if len(l.MonthsShort) != 12 || len(l.MonthsLong) != 12 || len(l.WeekdaysShort) != 7 || len(l.WeekdaysLong) != 7 {
		return nil, fmt.Errorf("locale %q: expected 12 months and 7 weekdays", code)
	}
	return &l, nil
}

// MustLocale returns the requested locale or the default one.
func MustLocale(code string) *Locale {
	if l, err := LoadLocale(code); err == nil {
		return l
	}
	l, err := LoadLocale(DefaultLocale)
	if err != nil {
		panic(err)
	}
	return l
}

// Weekday returns the short label for wd.
func (l *Locale) Weekday(wd time.Weekday) string {
	return l.WeekdaysShort[int(wd)]
}

// WeekdayName returns the full name for wd.
func (l *Locale) WeekdayName(wd time.Weekday) string {
	return l.WeekdaysLong[int(wd)]
}

// MonthYear formats t as "Marzo 2024".
func (l *Locale) MonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", l.MonthsLong[int(t.Month())-1], t.Year())
}

// DayMonthYear formats t as "1 ene 2024".
func (l *Locale) DayMonthYear(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), l.MonthsShort[int(t.Month())-1], t.Year())
}
