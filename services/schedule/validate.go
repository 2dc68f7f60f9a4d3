package schedule

import (
	"context"
	"fmt"

	"beu/models"
	"beu/utils"
)

const (
	RuleSlotOrder = "slot_order"
	RuleNoSlots   = "no_slots"
)

// ValidationError names the first day that blocks a save.
type ValidationError struct {
	Day     int    `json:"day_of_week"`
	DayName string `json:"day_name"`
	Rule    string `json:"rule"`
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case RuleSlotOrder:
		return fmt.Sprintf("%s: start time must be before end time", e.DayName)
	case RuleNoSlots:
		return fmt.Sprintf("%s: an available day needs at least one time slot", e.DayName)
	default:
		return fmt.Sprintf("%s: invalid schedule", e.DayName)
	}
}

// Validate checks the schedule and returns the payload to persist: the
// available days only, in Monday..Sunday order. Slot ordering is checked on
// every available day before any day is checked for missing slots; the
// first violation is returned.
func (e *Editor) Validate() ([]models.DaySchedule, error) {
	for _, d := range e.days {
		if !d.IsAvailable {
			continue
		}
		for _, slot := range d.TimeSlots {
			// Zero-padded HH:MM compares correctly as a string.
			if slot.StartTime >= slot.EndTime {
				return nil, &ValidationError{Day: d.DayOfWeek, DayName: e.DayName(d.DayOfWeek), Rule: RuleSlotOrder}
			}
		}
	}
	for _, d := range e.days {
		if d.IsAvailable && len(d.TimeSlots) == 0 {
			return nil, &ValidationError{Day: d.DayOfWeek, DayName: e.DayName(d.DayOfWeek), Rule: RuleNoSlots}
		}
	}

	var out []models.DaySchedule
	for _, d := range e.Days() {
		if d.IsAvailable {
			out = append(out, d)
		}
	}
	if out == nil {
		out = []models.DaySchedule{}
	}
	return out, nil
}

// SaveFunc persists a validated schedule.
type SaveFunc func(ctx context.Context, days []models.DaySchedule) error

// Save validates and hands the filtered payload to save. save is never
// called when validation fails.
func (e *Editor) Save(ctx context.Context, save SaveFunc) ([]models.DaySchedule, error) {
	days, err := e.Validate()
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			utils.RecordValidationFailure(ve.Rule)
		}
		return nil, err
	}
	if err := save(ctx, days); err != nil {
		return nil, err
	}
	return days, nil
}
