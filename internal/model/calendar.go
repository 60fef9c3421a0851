package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a half-open interval [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DisabledSlot blocks a time range on the calendar. Weekday and Date are
// optional scopes: a rule with neither applies every day, a rule with a
// weekday applies only on that weekday, a rule with a date only on that date.
type DisabledSlot struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	BusinessID uuid.UUID     `db:"business_id" json:"business_id"`
	Weekday    *time.Weekday `db:"weekday" json:"weekday,omitempty"`
	Date       *string       `db:"date" json:"date,omitempty"` // YYYY-MM-DD
	StartTime  string        `db:"start_time" json:"start_time" binding:"omitempty,clock"`
	EndTime    string        `db:"end_time" json:"end_time" binding:"omitempty,clock"` // "HH:MM", 24h
}

// CalendarSettings is display configuration for the scheduling dashboard.
// It never affects what the booking service accepts, only what clients draw.
type CalendarSettings struct {
	BusinessID      uuid.UUID      `db:"business_id" json:"business_id"`
	StartHour       int            `db:"start_hour" json:"start_hour"`
	EndHour         int            `db:"end_hour" json:"end_hour"`
	Timezone        string         `db:"timezone" json:"timezone"`
	DateFormat      string         `db:"date_format" json:"date_format"`
	TimeFormat      string         `db:"time_format" json:"time_format"`
	DisabledDays    []time.Weekday `db:"-" json:"disabled_days,omitempty"`
	WorkWeek        []time.Weekday `db:"-" json:"work_week,omitempty"`
	DisabledSlots   []DisabledSlot `db:"-" json:"disabled_slots,omitempty"`
	SlotDurationMin int            `db:"slot_duration_min" json:"slot_duration_min"`
}

func DefaultCalendarSettings(businessID uuid.UUID) *CalendarSettings {
	return &CalendarSettings{
		BusinessID:      businessID,
		StartHour:       9,
		EndHour:         21,
		Timezone:        "UTC",
		DateFormat:      "2006-01-02",
		TimeFormat:      "15:04",
		WorkWeek:        []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		SlotDurationMin: 60,
	}
}
