package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// HolidayCalendar flags public holidays using scmhub/calendar exchange
// calendars. Exchange holidays track national public holidays closely
// enough to drop atypical office and school traffic.
type HolidayCalendar struct {
	Calendar *calendar.Calendar
	MIC      string
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// GetHolidayCalendar loads the calendar for an ISO 10383 MIC such as "xnys".
func GetHolidayCalendar(mic string) (*HolidayCalendar, error) {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		return nil, fmt.Errorf("empty calendar code")
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		return nil, fmt.Errorf("unknown calendar %q", mic)
	}
	return &HolidayCalendar{Calendar: cal, MIC: mic, Timezone: cal.Loc}, nil
}

// -----------------------------------------------------------------------------

// IsHoliday reports whether t falls on a weekday the calendar closes.
// Weekends are not holidays: the recurrence already pins the weekday.
func (hc *HolidayCalendar) IsHoliday(t time.Time) bool {
	// Compare on the calendar's date for the sample's wall clock.
	if hc.Timezone != nil {
		t = time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, hc.Timezone)
	}

	weekday := t.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}
	return !hc.Calendar.IsBusinessDay(t)
}
