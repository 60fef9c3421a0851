// Package calendar computes the scheduling dashboard's slot and layout data:
// disabled-slot checks, event-block geometry, the current-time indicator, and
// day/week projections of the appointment list. Everything here is pure so
// clients on any platform render identical grids.
package calendar

import (
	"time"

	"github.com/nillow/booking-api/internal/model"
)

const dateLayout = "2006-01-02"

// minutesOfDay returns minutes since midnight for t.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// parseClock parses an "HH:MM" string into minutes since midnight.
// Malformed values disable nothing.
func parseClock(s string) (int, bool) {
	var h, m int
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	h = int(s[0]-'0')*10 + int(s[1]-'0')
	m = int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// SlotDisabled reports whether the candidate interval is blocked by any rule.
// A rule applies when its weekday scope (if any) matches the candidate's
// weekday and its date scope (if any) matches the candidate's date. An
// applicable rule blocks the candidate when the candidate's start or end
// falls strictly inside the rule's range, or the rule's range is fully
// contained in the candidate. The test is symmetric: full containment in
// either direction disables the slot.
func SlotDisabled(candidate model.TimeSlot, rules []model.DisabledSlot) bool {
	candStart := minutesOfDay(candidate.Start)
	candEnd := minutesOfDay(candidate.End)
	candDate := candidate.Start.Format(dateLayout)
	candWeekday := candidate.Start.Weekday()

	for _, rule := range rules {
		if rule.Weekday != nil && *rule.Weekday != candWeekday {
			continue
		}
		if rule.Date != nil && *rule.Date != candDate {
			continue
		}

		ruleStart, ok := parseClock(rule.StartTime)
		if !ok {
			continue
		}
		ruleEnd, ok := parseClock(rule.EndTime)
		if !ok {
			continue
		}

		startInside := candStart > ruleStart && candStart < ruleEnd
		endInside := candEnd > ruleStart && candEnd < ruleEnd
		ruleContained := ruleStart >= candStart && ruleEnd <= candEnd

		if startInside || endInside || ruleContained {
			return true
		}
	}
	return false
}

// BlockGeometry returns the vertical position of an event block as
// percentages of the visible grid. Top is the offset of the event's start
// from startHour, height its duration, both relative to the visible span.
// ok is false when the event lies entirely outside the visible hours.
func BlockGeometry(event model.TimeSlot, startHour, endHour int) (top, height float64, ok bool) {
	totalMinutes := float64((endHour - startHour) * 60)
	if totalMinutes <= 0 {
		return 0, 0, false
	}

	startMin := float64(minutesOfDay(event.Start) - startHour*60)
	durationMin := event.End.Sub(event.Start).Minutes()

	if startMin+durationMin <= 0 || startMin >= totalMinutes {
		return 0, 0, false
	}

	return startMin / totalMinutes * 100, durationMin / totalMinutes * 100, true
}

// NowIndicator returns the current-time marker's vertical offset percentage.
// ok is false when now falls outside the visible hour range, in which case
// the marker is hidden.
func NowIndicator(now time.Time, startHour, endHour int) (top float64, ok bool) {
	totalMinutes := float64((endHour - startHour) * 60)
	if totalMinutes <= 0 {
		return 0, false
	}

	offset := float64(minutesOfDay(now) - startHour*60)
	if offset < 0 || offset > totalMinutes {
		return 0, false
	}
	return offset / totalMinutes * 100, true
}

// DayEvents filters appointments to those starting on the given date.
func DayEvents(appointments []*model.Appointment, date time.Time) []*model.Appointment {
	y, m, d := date.Date()

	var events []*model.Appointment
	for _, apt := range appointments {
		ay, am, ad := apt.StartTime.Date()
		if ay == y && am == m && ad == d {
			events = append(events, apt)
		}
	}
	return events
}

// WeekDays returns the dates of the 7-day window containing anchor,
// restricted to the work-week day set when one is configured. Column width
// on the week grid is the full width divided evenly across the result.
func WeekDays(anchor time.Time, workWeek []time.Weekday) []time.Time {
	weekStart := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, anchor.Location())

	include := func(d time.Weekday) bool {
		if len(workWeek) == 0 {
			return true
		}
		for _, w := range workWeek {
			if w == d {
				return true
			}
		}
		return false
	}

	var days []time.Time
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		if include(day.Weekday()) {
			days = append(days, day)
		}
	}
	return days
}

// ColumnWidth is the percentage width of one week-view column.
func ColumnWidth(days []time.Time) float64 {
	if len(days) == 0 {
		return 0
	}
	return 100 / float64(len(days))
}

// ProposeSlot builds the one-hour candidate interval for a clicked grid cell.
func ProposeSlot(day time.Time, hour, minute int) model.TimeSlot {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	return model.TimeSlot{Start: start, End: start.Add(time.Hour)}
}

// generateSlots cuts [start, end) into consecutive intervals of duration.
func generateSlots(start, end time.Time, duration time.Duration) []model.TimeSlot {
	var slots []model.TimeSlot
	for t := start; t.Add(duration).Before(end) || t.Add(duration).Equal(end); t = t.Add(duration) {
		slots = append(slots, model.TimeSlot{Start: t, End: t.Add(duration)})
	}
	return slots
}

// overlaps reports whether two half-open intervals intersect.
func overlaps(a, b model.TimeSlot) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Availability computes the free slots for one day: the business hours for
// that weekday cut into slot-sized intervals, minus the break window,
// disabled-slot rules, and existing non-terminal appointments.
func Availability(date time.Time, hours []model.BusinessHour, rules []model.DisabledSlot, appointments []*model.Appointment, slotMinutes int) []model.TimeSlot {
	if slotMinutes <= 0 {
		slotMinutes = 60
	}

	var dayHours *model.BusinessHour
	for i := range hours {
		if hours[i].Weekday == date.Weekday() {
			dayHours = &hours[i]
			break
		}
	}
	if dayHours == nil || dayHours.Closed {
		return nil
	}

	openMin, ok := parseClock(dayHours.Open)
	if !ok {
		return nil
	}
	closeMin, ok := parseClock(dayHours.Close)
	if !ok || closeMin <= openMin {
		return nil
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	open := midnight.Add(time.Duration(openMin) * time.Minute)
	close := midnight.Add(time.Duration(closeMin) * time.Minute)

	var breakSlot *model.TimeSlot
	if dayHours.BreakStart != nil && dayHours.BreakEnd != nil {
		bs, okS := parseClock(*dayHours.BreakStart)
		be, okE := parseClock(*dayHours.BreakEnd)
		if okS && okE && be > bs {
			breakSlot = &model.TimeSlot{
				Start: midnight.Add(time.Duration(bs) * time.Minute),
				End:   midnight.Add(time.Duration(be) * time.Minute),
			}
		}
	}

	var available []model.TimeSlot
	for _, slot := range generateSlots(open, close, time.Duration(slotMinutes)*time.Minute) {
		if breakSlot != nil && overlaps(slot, *breakSlot) {
			continue
		}
		if SlotDisabled(slot, rules) {
			continue
		}

		conflict := false
		for _, apt := range appointments {
			if apt.Status.IsFinal() {
				continue
			}
			if overlaps(slot, model.TimeSlot{Start: apt.StartTime, End: apt.EndTime}) {
				conflict = true
				break
			}
		}
		if !conflict {
			available = append(available, slot)
		}
	}
	return available
}
