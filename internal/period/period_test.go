package period

import (
	"testing"
	"time"
)

func fixedClock(now time.Time) *Clock {
	return NewClockAt(7, func() time.Time { return now })
}

func TestDayKey(t *testing.T) {
	c := NewClock(7)

	t.Run("rolls_over_at_civil_midnight", func(t *testing.T) {
		// 17:00 UTC is midnight in UTC+7.
		before := time.Date(2025, 2, 28, 16, 59, 59, 0, time.UTC)
		after := time.Date(2025, 2, 28, 17, 0, 0, 0, time.UTC)

		if got := c.DayKey(before); got != "2025-02-28" {
			t.Errorf("expected 2025-02-28, got %s", got)
		}
		if got := c.DayKey(after); got != "2025-03-01" {
			t.Errorf("expected 2025-03-01, got %s", got)
		}
	})

	t.Run("today_key_uses_injected_now", func(t *testing.T) {
		now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)
		if got := fixedClock(now).TodayKey(); got != "2025-06-12" {
			t.Errorf("expected 2025-06-12, got %s", got)
		}
	})
}

func TestMonthRange(t *testing.T) {
	c := NewClock(7)
	start, end := c.MonthRange(2025, 2)

	wantStart := time.Date(2025, 1, 31, 17, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, start)
	}

	wantEnd := time.Date(2025, 2, 28, 17, 0, 0, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("expected end %v, got %v", wantEnd, end)
	}

	t.Run("boundary_is_half_open", func(t *testing.T) {
		atMidnight := time.Date(2025, 2, 1, 0, 0, 0, 0, c.Location())
		justBefore := atMidnight.Add(-time.Millisecond)

		if atMidnight.Before(start) || !atMidnight.Before(end) {
			t.Error("instant at first civil midnight should be in range")
		}
		if !justBefore.Before(start) {
			t.Error("instant one millisecond before midnight should be out of range")
		}
	})

	t.Run("december_wraps_to_next_year", func(t *testing.T) {
		_, end := c.MonthRange(2025, 12)
		want := time.Date(2026, 1, 1, 0, 0, 0, 0, c.Location())
		if !end.Equal(want) {
			t.Errorf("expected %v, got %v", want, end)
		}
	})
}

func TestWeekdayIndex(t *testing.T) {
	c := NewClock(7)
	// 2025-06-09 is a Monday, 2025-06-15 a Sunday (in UTC+7).
	for i := 0; i < 7; i++ {
		day := time.Date(2025, 6, 9+i, 12, 0, 0, 0, c.Location())
		if got := c.WeekdayIndex(day); got != i {
			t.Errorf("day %d: expected index %d, got %d", 9+i, i, got)
		}
	}
}

func TestWeekRange(t *testing.T) {
	c := NewClock(7)

	// Wednesday mid-month.
	ref := time.Date(2025, 6, 11, 15, 30, 0, 0, c.Location())
	start, end := c.WeekRange(ref)

	wantStart := time.Date(2025, 6, 9, 0, 0, 0, 0, c.Location())
	if !start.Equal(wantStart) {
		t.Errorf("expected Monday %v, got %v", wantStart, start)
	}
	if got := end.Sub(start); got != 7*24*time.Hour {
		t.Errorf("expected a 7-day window, got %v", got)
	}

	t.Run("monday_reference_is_its_own_start", func(t *testing.T) {
		monday := time.Date(2025, 6, 9, 3, 0, 0, 0, c.Location())
		start, _ := c.WeekRange(monday)
		if !start.Equal(wantStart) {
			t.Errorf("expected %v, got %v", wantStart, start)
		}
	})

	t.Run("sunday_reference_keeps_same_monday", func(t *testing.T) {
		sunday := time.Date(2025, 6, 15, 23, 0, 0, 0, c.Location())
		start, _ := c.WeekRange(sunday)
		if !start.Equal(wantStart) {
			t.Errorf("expected %v, got %v", wantStart, start)
		}
	})
}

func TestWeeksInMonth(t *testing.T) {
	c := NewClock(7)

	cases := []struct {
		year, month, want int
	}{
		{2025, 2, 5},  // starts Saturday, 28 days
		{2025, 6, 6},  // starts Sunday, 30 days
		{2025, 9, 5},  // starts Monday, 30 days
		{2021, 2, 4},  // starts Monday, 28 days: exactly 4 buckets
		{2025, 12, 5}, // starts Monday, 31 days
	}
	for _, tc := range cases {
		if got := c.WeeksInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("%d-%02d: expected %d weeks, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestWeekStartForIndex(t *testing.T) {
	c := NewClock(7)

	t.Run("first_week_monday_may_precede_month", func(t *testing.T) {
		// June 2025 starts on a Sunday; its first bucket's Monday is May 26.
		got := c.WeekStartForIndex(2025, 6, 1)
		want := time.Date(2025, 5, 26, 0, 0, 0, 0, c.Location())
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("nth_week_advances_by_seven_days", func(t *testing.T) {
		first := c.WeekStartForIndex(2025, 6, 1)
		third := c.WeekStartForIndex(2025, 6, 3)
		if got := third.Sub(first); got != 14*24*time.Hour {
			t.Errorf("expected 14 days between week 1 and 3, got %v", got)
		}
	})

	t.Run("clamps_below_range", func(t *testing.T) {
		if got, want := c.WeekStartForIndex(2025, 6, 0), c.WeekStartForIndex(2025, 6, 1); !got.Equal(want) {
			t.Errorf("index 0 should behave as 1: got %v want %v", got, want)
		}
	})

	t.Run("clamps_above_range", func(t *testing.T) {
		last := c.WeeksInMonth(2025, 6)
		if got, want := c.WeekStartForIndex(2025, 6, 99), c.WeekStartForIndex(2025, 6, last); !got.Equal(want) {
			t.Errorf("index 99 should behave as %d: got %v want %v", last, got, want)
		}
	})
}

func TestDayLabel(t *testing.T) {
	c := NewClock(7)
	want := []string{"Sen", "Sel", "Rab", "Kam", "Jum", "Sab", "Min"}
	for i, label := range want {
		day := time.Date(2025, 6, 9+i, 12, 0, 0, 0, c.Location())
		if got := c.DayLabel(day); got != label {
			t.Errorf("day %d: expected %q, got %q", 9+i, label, got)
		}
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2025-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2025 || month != 2 {
		t.Errorf("expected 2025-02, got %d-%02d", year, month)
	}

	for _, bad := range []string{"2025", "02-2025", "2025-13", "abc"} {
		if _, _, err := ParseMonth(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
