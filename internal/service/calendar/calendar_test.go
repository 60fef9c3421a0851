package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillow/booking-api/internal/model"
)

func slot(t *testing.T, day string, from, to string) model.TimeSlot {
	t.Helper()
	start, err := time.Parse("2006-01-02 15:04", day+" "+from)
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02 15:04", day+" "+to)
	require.NoError(t, err)
	return model.TimeSlot{Start: start, End: end}
}

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }
func strPtr(s string) *string                 { return &s }

func TestSlotDisabled(t *testing.T) {
	// 2025-03-10 is a Monday.
	monday := "2025-03-10"
	tuesday := "2025-03-11"

	mondayLunch := model.DisabledSlot{
		Weekday:   weekdayPtr(time.Monday),
		StartTime: "12:00",
		EndTime:   "13:00",
	}

	tests := []struct {
		name      string
		candidate model.TimeSlot
		rules     []model.DisabledSlot
		want      bool
	}{
		{
			name:      "candidate inside weekday rule",
			candidate: slot(t, monday, "12:15", "12:45"),
			rules:     []model.DisabledSlot{mondayLunch},
			want:      true,
		},
		{
			name:      "same time on another weekday",
			candidate: slot(t, tuesday, "12:15", "12:45"),
			rules:     []model.DisabledSlot{mondayLunch},
			want:      false,
		},
		{
			name:      "start strictly inside",
			candidate: slot(t, monday, "12:30", "14:00"),
			rules:     []model.DisabledSlot{mondayLunch},
			want:      true,
		},
		{
			name:      "end strictly inside",
			candidate: slot(t, monday, "11:00", "12:30"),
			rules:     []model.DisabledSlot{mondayLunch},
			want:      true,
		},
		{
			name:      "rule contained in candidate",
			candidate: slot(t, monday, "11:00", "14:00"),
			rules:     []model.DisabledSlot{mondayLunch},
			want:      true,
		},
		{
			name:      "touching boundaries only",
			candidate: slot(t, monday, "11:00", "12:00"),
			rules:     []model.DisabledSlot{mondayLunch},
			want:      false,
		},
		{
			name:      "date-scoped rule matches its date",
			candidate: slot(t, monday, "09:00", "10:00"),
			rules: []model.DisabledSlot{{
				Date:      strPtr(monday),
				StartTime: "08:30",
				EndTime:   "11:00",
			}},
			want: true,
		},
		{
			name:      "date-scoped rule skips other dates",
			candidate: slot(t, tuesday, "09:00", "10:00"),
			rules: []model.DisabledSlot{{
				Date:      strPtr(monday),
				StartTime: "08:30",
				EndTime:   "11:00",
			}},
			want: false,
		},
		{
			name:      "unscoped rule applies every day",
			candidate: slot(t, tuesday, "12:15", "12:45"),
			rules: []model.DisabledSlot{{
				StartTime: "12:00",
				EndTime:   "13:00",
			}},
			want: true,
		},
		{
			name:      "malformed clock disables nothing",
			candidate: slot(t, monday, "12:15", "12:45"),
			rules: []model.DisabledSlot{{
				StartTime: "noon",
				EndTime:   "13:00",
			}},
			want: false,
		},
		{
			name:      "no rules",
			candidate: slot(t, monday, "12:15", "12:45"),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotDisabled(tt.candidate, tt.rules))
		})
	}
}

func TestBlockGeometry(t *testing.T) {
	day := "2025-03-10"

	t.Run("event inside the visible range", func(t *testing.T) {
		top, height, ok := BlockGeometry(slot(t, day, "10:00", "10:45"), 9, 21)
		require.True(t, ok)
		// 60 minutes into a 720-minute grid, lasting 45 minutes.
		assert.InDelta(t, 8.3333, top, 0.001)
		assert.InDelta(t, 6.25, height, 0.001)
	})

	t.Run("event at the top edge", func(t *testing.T) {
		top, height, ok := BlockGeometry(slot(t, day, "09:00", "10:00"), 9, 21)
		require.True(t, ok)
		assert.Equal(t, 0.0, top)
		assert.InDelta(t, 8.3333, height, 0.001)
	})

	t.Run("event entirely before the range", func(t *testing.T) {
		_, _, ok := BlockGeometry(slot(t, day, "07:00", "08:00"), 9, 21)
		assert.False(t, ok)
	})

	t.Run("event entirely after the range", func(t *testing.T) {
		_, _, ok := BlockGeometry(slot(t, day, "21:00", "22:00"), 9, 21)
		assert.False(t, ok)
	})

	t.Run("degenerate range", func(t *testing.T) {
		_, _, ok := BlockGeometry(slot(t, day, "10:00", "11:00"), 9, 9)
		assert.False(t, ok)
	})
}

func TestNowIndicator(t *testing.T) {
	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("noon on a 9 to 21 grid", func(t *testing.T) {
		top, ok := NowIndicator(noon, 9, 21)
		require.True(t, ok)
		assert.InDelta(t, 25.0, top, 0.001)
	})

	t.Run("hidden before opening", func(t *testing.T) {
		early := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
		_, ok := NowIndicator(early, 9, 21)
		assert.False(t, ok)
	})

	t.Run("hidden after closing", func(t *testing.T) {
		late := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
		_, ok := NowIndicator(late, 9, 21)
		assert.False(t, ok)
	})
}

func TestWeekDays(t *testing.T) {
	// Wednesday 2025-03-12.
	anchor := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

	t.Run("full week without a work-week filter", func(t *testing.T) {
		days := WeekDays(anchor, nil)
		require.Len(t, days, 7)
		assert.Equal(t, time.Sunday, days[0].Weekday())
		assert.Equal(t, time.Saturday, days[6].Weekday())
	})

	t.Run("work week filter", func(t *testing.T) {
		workWeek := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
		days := WeekDays(anchor, workWeek)
		require.Len(t, days, 5)
		assert.Equal(t, time.Monday, days[0].Weekday())
		assert.Equal(t, time.Friday, days[4].Weekday())
		assert.Equal(t, 20.0, ColumnWidth(days))
	})

	t.Run("column width of empty set", func(t *testing.T) {
		assert.Equal(t, 0.0, ColumnWidth(nil))
	})
}

func TestDayEvents(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	onDay := &model.Appointment{StartTime: day.Add(10 * time.Hour)}
	nextDay := &model.Appointment{StartTime: day.Add(26 * time.Hour)}

	events := DayEvents([]*model.Appointment{onDay, nextDay}, day)
	require.Len(t, events, 1)
	assert.Same(t, onDay, events[0])
}

func TestProposeSlot(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s := ProposeSlot(day, 14, 30)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), s.Start)
	assert.Equal(t, time.Hour, s.End.Sub(s.Start))
}

func TestAvailability(t *testing.T) {
	// Monday, open 09:00-17:00 with a 12:00-13:00 break.
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	hours := []model.BusinessHour{{
		Weekday:    time.Monday,
		Open:       "09:00",
		Close:      "17:00",
		BreakStart: strPtr("12:00"),
		BreakEnd:   strPtr("13:00"),
	}}

	t.Run("break and bookings removed", func(t *testing.T) {
		booked := &model.Appointment{
			Status:    model.AppointmentStatusScheduled,
			StartTime: date.Add(10 * time.Hour),
			EndTime:   date.Add(11 * time.Hour),
		}
		slots := Availability(date, hours, nil, []*model.Appointment{booked}, 60)

		// 8 hourly slots, minus the break and the booking.
		require.Len(t, slots, 6)
		for _, s := range slots {
			assert.NotEqual(t, 12, s.Start.Hour())
			assert.NotEqual(t, 10, s.Start.Hour())
		}
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		cancelled := &model.Appointment{
			Status:    model.AppointmentStatusCancelled,
			StartTime: date.Add(10 * time.Hour),
			EndTime:   date.Add(11 * time.Hour),
		}
		slots := Availability(date, hours, nil, []*model.Appointment{cancelled}, 60)
		require.Len(t, slots, 7)
	})

	t.Run("disabled slot rules apply", func(t *testing.T) {
		rules := []model.DisabledSlot{{
			Weekday:   weekdayPtr(time.Monday),
			StartTime: "09:00",
			EndTime:   "11:00",
		}}
		slots := Availability(date, hours, rules, nil, 60)
		require.NotEmpty(t, slots)
		assert.Equal(t, 11, slots[0].Start.Hour())
	})

	t.Run("closed day yields nothing", func(t *testing.T) {
		closed := []model.BusinessHour{{Weekday: time.Monday, Closed: true}}
		assert.Nil(t, Availability(date, closed, nil, nil, 60))
	})

	t.Run("no hours configured for the weekday", func(t *testing.T) {
		tuesdayOnly := []model.BusinessHour{{Weekday: time.Tuesday, Open: "09:00", Close: "17:00"}}
		assert.Nil(t, Availability(date, tuesdayOnly, nil, nil, 60))
	})
}
