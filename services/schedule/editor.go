package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"beu/models"
	"beu/services/calendar"
)

const (
	DaysPerWeek      = 7
	DefaultSlotStart = "09:00"
	DefaultSlotEnd   = "17:00"
)

var (
	ErrDayOutOfRange  = errors.New("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	ErrDayUnavailable = errors.New("day is not available; toggle it on first")
	ErrSlotIndex      = errors.New("time slot index out of range")
	ErrInvalidTime    = errors.New("time must be HH:MM in 24h format")
	ErrUnknownEdit    = errors.New("unknown schedule edit")
	ErrSlotRequired   = errors.New("update_slot requires a slot")
	ErrDuplicateDay   = errors.New("day_of_week listed more than once")
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClock reports whether s is a zero-padded 24h "HH:MM" time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// Weekday maps day_of_week (0 = Monday) to time.Weekday.
func Weekday(day int) time.Weekday {
	return time.Weekday((day + 1) % 7)
}

func defaultSlot() models.ScheduleTimeSlot {
	return models.ScheduleTimeSlot{StartTime: DefaultSlotStart, EndTime: DefaultSlotEnd, IsActive: true}
}

// Editor holds the seven days of a weekly availability being edited.
// Slots of a day toggled off are kept but hidden from the saved payload.
type Editor struct {
	days   [DaysPerWeek]models.DaySchedule
	locale *calendar.Locale
}

// NewEditor seeds Monday..Sunday as unavailable and overlays initial.
// Entries with an out of range day_of_week are ignored.
func NewEditor(initial []models.DaySchedule, locale *calendar.Locale) *Editor {
	if locale == nil {
		locale = calendar.MustLocale(calendar.DefaultLocale)
	}
	e := &Editor{locale: locale}
	for i := range e.days {
		e.days[i] = models.DaySchedule{DayOfWeek: i, TimeSlots: []models.ScheduleTimeSlot{}}
	}
	for _, d := range initial {
		if d.DayOfWeek < 0 || d.DayOfWeek >= DaysPerWeek {
			continue
		}
		slots := make([]models.ScheduleTimeSlot, len(d.TimeSlots))
		copy(slots, d.TimeSlots)
		e.days[d.DayOfWeek] = models.DaySchedule{
			DayOfWeek:   d.DayOfWeek,
			IsAvailable: d.IsAvailable,
			TimeSlots:   slots,
		}
	}
	return e
}

// Days returns a copy of all seven days, Monday first.
func (e *Editor) Days() []models.DaySchedule {
	out := make([]models.DaySchedule, DaysPerWeek)
	for i, d := range e.days {
		slots := make([]models.ScheduleTimeSlot, len(d.TimeSlots))
		copy(slots, d.TimeSlots)
		d.TimeSlots = slots
		out[i] = d
	}
	return out
}

// DayName is the localised name of day_of_week.
func (e *Editor) DayName(day int) string {
	return e.locale.WeekdayName(Weekday(day))
}

func (e *Editor) day(day int) (*models.DaySchedule, error) {
	if day < 0 || day >= DaysPerWeek {
		return nil, ErrDayOutOfRange
	}
	return &e.days[day], nil
}

func (e *Editor) availableDay(day int) (*models.DaySchedule, error) {
	d, err := e.day(day)
	if err != nil {
		return nil, err
	}
	if !d.IsAvailable {
		return nil, fmt.Errorf("%s: %w", e.DayName(day), ErrDayUnavailable)
	}
	return d, nil
}

// Toggle flips a day between available and unavailable. A day switched on
// without slots receives the default 09:00-17:00 slot.
func (e *Editor) Toggle(day int) error {
	d, err := e.day(day)
	if err != nil {
		return err
	}
	d.IsAvailable = !d.IsAvailable
	if d.IsAvailable && len(d.TimeSlots) == 0 {
		d.TimeSlots = append(d.TimeSlots, defaultSlot())
	}
	return nil
}

// AddSlot appends a default slot to an available day.
func (e *Editor) AddSlot(day int) error {
	d, err := e.availableDay(day)
	if err != nil {
		return err
	}
	d.TimeSlots = append(d.TimeSlots, defaultSlot())
	return nil
}

// UpdateSlot patches slot index of an available day. Empty times and a nil
// is_active keep the current value. Ordering is only checked on save.
func (e *Editor) UpdateSlot(day, index int, slot models.SlotPatch) error {
	d, err := e.availableDay(day)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(d.TimeSlots) {
		return ErrSlotIndex
	}
	current := d.TimeSlots[index]
	if slot.StartTime != "" {
		if !ValidClock(slot.StartTime) {
			return fmt.Errorf("start_time %q: %w", slot.StartTime, ErrInvalidTime)
		}
		current.StartTime = slot.StartTime
	}
	if slot.EndTime != "" {
		if !ValidClock(slot.EndTime) {
			return fmt.Errorf("end_time %q: %w", slot.EndTime, ErrInvalidTime)
		}
		current.EndTime = slot.EndTime
	}
	if slot.IsActive != nil {
		current.IsActive = *slot.IsActive
	}
	d.TimeSlots[index] = current
	return nil
}

// RemoveSlot deletes slot index of an available day.
func (e *Editor) RemoveSlot(day, index int) error {
	d, err := e.availableDay(day)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(d.TimeSlots) {
		return ErrSlotIndex
	}
	d.TimeSlots = append(d.TimeSlots[:index], d.TimeSlots[index+1:]...)
	return nil
}

// Apply dispatches one client edit.
func (e *Editor) Apply(edit models.ScheduleEdit) error {
	switch edit.Op {
	case "toggle":
		return e.Toggle(edit.Day)
	case "add_slot":
		return e.AddSlot(edit.Day)
	case "update_slot":
		if edit.Slot == nil {
			return ErrSlotRequired
		}
		return e.UpdateSlot(edit.Day, edit.Index, *edit.Slot)
	case "remove_slot":
		return e.RemoveSlot(edit.Day, edit.Index)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEdit, edit.Op)
	}
}
