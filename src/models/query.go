package models

import (
	"fmt"
	"time"
)

// MTimeRange is a half-open interval [Start, End).
type MTimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r MTimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.DateTime), r.End.Format(time.DateTime))
}

// -----------------------------------------------------------------------------

// MSampleQuery describes the samples one analysis run reads.
type MSampleQuery struct {
	HostName       string
	ServiceName    string
	ServicePattern string

	Window     MTimeRange
	Weekday    time.Weekday
	SlotStart  time.Duration // wall-clock time of day
	SlotLength time.Duration
	Location   *time.Location
}

// -----------------------------------------------------------------------------

// NewRecurringQuery builds the "same weekday, same time slot, last N weeks"
// query anchored at now. The slot starts at now's time of day and lasts
// slot; the lookback window ends at now and starts the same wall-clock time
// lookbackWeeks earlier.
func NewRecurringQuery(now time.Time, loc *time.Location, lookbackWeeks int, slot time.Duration, host, service, pattern string) MSampleQuery {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	// Wall-clock time of day; elapsed time since midnight drifts on DST days.
	clock := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second

	return MSampleQuery{
		HostName:       host,
		ServiceName:    service,
		ServicePattern: pattern,
		Window:         MTimeRange{Start: now.AddDate(0, 0, -7*lookbackWeeks), End: now},
		Weekday:        now.Weekday(),
		SlotStart:      clock,
		SlotLength:     slot,
		Location:       loc,
	}
}

// -----------------------------------------------------------------------------

// Occurrences expands the recurrence into explicit ranges, oldest first.
// Every calendar day inside the window falling on Weekday contributes the
// range [day+SlotStart, day+SlotStart+SlotLength) clipped to the window.
// Days are walked in wall-clock terms so DST shifts keep the slot aligned.
func (q MSampleQuery) Occurrences() []MTimeRange {
	loc := q.Location
	if loc == nil {
		loc = time.Local
	}
	if q.SlotLength <= 0 || !q.Window.End.After(q.Window.Start) {
		return nil
	}

	start := q.Window.Start.In(loc)
	end := q.Window.End.In(loc)

	// Slot may begin on the day before the window start and still overlap it.
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)

	var out []MTimeRange
	for !day.After(end) {
		if day.Weekday() == q.Weekday {
			h := int(q.SlotStart / time.Hour)
			m := int((q.SlotStart % time.Hour) / time.Minute)
			s := int((q.SlotStart % time.Minute) / time.Second)
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, loc)
			slotEnd := slotStart.Add(q.SlotLength)

			if slotStart.Before(start) {
				slotStart = start
			}
			if slotEnd.After(end) {
				slotEnd = end
			}
			if slotEnd.After(slotStart) {
				out = append(out, MTimeRange{Start: slotStart, End: slotEnd})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// -----------------------------------------------------------------------------

// Describe returns a single-line summary for logs and reports.
func (q MSampleQuery) Describe() string {
	return fmt.Sprintf("host=%q service=%q weekday=%s slot=%s+%s window=%s",
		q.HostName, q.ServiceName, q.Weekday, q.SlotStart, q.SlotLength, q.Window)
}
