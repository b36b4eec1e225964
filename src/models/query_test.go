package models

import (
	"testing"
	"time"
)

func TestNewRecurringQuery(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 15, 0, time.UTC)
	q := NewRecurringQuery(now, time.UTC, 4, time.Hour, "h", "s", "")

	if q.Weekday != time.Monday {
		t.Fatalf("expected Monday, got %s", q.Weekday)
	}
	if q.SlotStart != 10*time.Hour+30*time.Minute+15*time.Second {
		t.Fatalf("unexpected slot start %v", q.SlotStart)
	}
	if !q.Window.Start.Equal(time.Date(2026, 9, 21, 10, 30, 15, 0, time.UTC)) || !q.Window.End.Equal(now) {
		t.Fatalf("unexpected window %s", q.Window)
	}
}

func TestNewRecurringQueryOnDSTChangeDays(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	cases := []struct {
		name string
		now  time.Time
		prev time.Time
	}{
		{"spring forward", time.Date(2026, 3, 8, 10, 0, 0, 0, loc), time.Date(2026, 3, 1, 10, 0, 0, 0, loc)},
		{"fall back", time.Date(2026, 11, 1, 10, 0, 0, 0, loc), time.Date(2026, 10, 25, 10, 0, 0, 0, loc)},
	}

	for _, tc := range cases {
		q := NewRecurringQuery(tc.now, loc, 1, time.Hour, "h", "s", "")
		if q.SlotStart != 10*time.Hour {
			t.Fatalf("%s: expected 10h slot start, got %v", tc.name, q.SlotStart)
		}
		got := q.Occurrences()
		if len(got) != 1 {
			t.Fatalf("%s: expected 1 occurrence, got %v", tc.name, got)
		}
		if !got[0].Start.Equal(tc.prev) || !got[0].End.Equal(tc.prev.Add(time.Hour)) {
			t.Fatalf("%s: expected slot at %s, got %s", tc.name, tc.prev, got[0])
		}
	}
}

func TestOccurrencesSameWeekdayAndSlot(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	q := NewRecurringQuery(now, time.UTC, 4, time.Hour, "h", "s", "")

	got := q.Occurrences()
	if len(got) != 4 {
		t.Fatalf("expected 4 occurrences, got %d: %v", len(got), got)
	}
	for i, o := range got {
		wantStart := time.Date(2026, 9, 21+7*i, 10, 30, 0, 0, time.UTC)
		if !o.Start.Equal(wantStart) || o.End.Sub(o.Start) != time.Hour {
			t.Fatalf("occurrence %d: got %s", i, o)
		}
		if o.Start.Weekday() != time.Monday {
			t.Fatalf("occurrence %d on %s", i, o.Start.Weekday())
		}
	}
}

func TestOccurrencesAcrossMidnight(t *testing.T) {
	// Sunday 23:30 with a one hour slot runs into Monday.
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	q := NewRecurringQuery(now, time.UTC, 2, time.Hour, "h", "s", "")

	got := q.Occurrences()
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %d: %v", len(got), got)
	}
	first := got[0]
	if !first.Start.Equal(time.Date(2026, 10, 4, 23, 30, 0, 0, time.UTC)) ||
		!first.End.Equal(time.Date(2026, 10, 5, 0, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first occurrence %s", first)
	}
}

func TestOccurrencesClipToWindow(t *testing.T) {
	q := MSampleQuery{
		Window: MTimeRange{
			Start: time.Date(2026, 10, 12, 11, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 10, 19, 11, 0, 0, 0, time.UTC),
		},
		Weekday:    time.Monday,
		SlotStart:  10*time.Hour + 30*time.Minute,
		SlotLength: time.Hour,
		Location:   time.UTC,
	}

	got := q.Occurrences()
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %v", got)
	}
	if !got[0].Start.Equal(q.Window.Start) || got[0].End.Sub(got[0].Start) != 30*time.Minute {
		t.Fatalf("expected first slot clipped to window start, got %s", got[0])
	}
	if !got[1].End.Equal(q.Window.End) || got[1].End.Sub(got[1].Start) != 30*time.Minute {
		t.Fatalf("expected last slot clipped to window end, got %s", got[1])
	}
}

func TestOccurrencesKeepWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// DST ends 2026-11-01 in the US.
	now := time.Date(2026, 11, 9, 10, 0, 0, 0, loc)
	q := NewRecurringQuery(now, loc, 2, time.Hour, "h", "s", "")

	for _, o := range q.Occurrences() {
		if o.Start.Hour() != 10 || o.Start.Minute() != 0 {
			t.Fatalf("expected 10:00 local start, got %s", o.Start)
		}
	}
}

func TestOccurrencesEmpty(t *testing.T) {
	q := MSampleQuery{Location: time.UTC, SlotLength: time.Hour}
	if got := q.Occurrences(); got != nil {
		t.Fatalf("expected no occurrences for empty window, got %v", got)
	}
}
