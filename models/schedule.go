package models

// ScheduleTimeSlot is one availability window within a day, "HH:MM" 24h.
type ScheduleTimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

// DaySchedule is the recurring availability of one weekday.
// DayOfWeek is 0 = Monday … 6 = Sunday.
type DaySchedule struct {
	DayOfWeek   int                `json:"day_of_week"`
	IsAvailable bool               `json:"is_available"`
	TimeSlots   []ScheduleTimeSlot `json:"time_slots"`
}

// ScheduleDraft is an in-progress editor session.
type ScheduleDraft struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Days      []DaySchedule `json:"days"`
	UpdatedAt int64         `json:"updated_at"`
}

// SlotPatch is a partial slot update. Empty or nil fields keep the current value.
type SlotPatch struct {
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// ScheduleEdit is one editor operation applied to a draft.
type ScheduleEdit struct {
	Op    string     `json:"op" binding:"required,oneof=toggle add_slot update_slot remove_slot"`
	Day   int        `json:"day" binding:"min=0,max=6"`
	Index int        `json:"index"`
	Slot  *SlotPatch `json:"slot,omitempty"`
}
