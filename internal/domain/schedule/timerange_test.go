package schedule

import (
	"testing"
	"time"
)

func TestResolveRange_Day(t *testing.T) {
	ref := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	rng, err := ResolveRange(ref, ViewDay)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}
	wantStart := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !rng.Start.Equal(wantStart) {
		t.Errorf("start: got %v, want %v", rng.Start, wantStart)
	}
	if !rng.End.Equal(wantEnd) {
		t.Errorf("end: got %v, want %v", rng.End, wantEnd)
	}
	if got := rng.End.Sub(rng.Start); got != 24*time.Hour-time.Millisecond {
		t.Errorf("span: got %v", got)
	}
}

func TestResolveRange_WeekIsMondayToSunday(t *testing.T) {
	// One reference per weekday, including the Sunday wrap.
	for day := 11; day <= 17; day++ {
		ref := time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
		rng, err := ResolveRange(ref, ViewWeek)
		if err != nil {
			t.Fatalf("ResolveRange failed: %v", err)
		}
		if rng.Start.Weekday() != time.Monday {
			t.Errorf("ref %v: week starts on %v", ref, rng.Start.Weekday())
		}
		if rng.End.Weekday() != time.Sunday {
			t.Errorf("ref %v: week ends on %v", ref, rng.End.Weekday())
		}
		if got := rng.End.Sub(rng.Start); got != 7*24*time.Hour-time.Millisecond {
			t.Errorf("ref %v: span %v", ref, got)
		}
	}
}

func TestResolveRange_WeekSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)
	rng, err := ResolveRange(sunday, ViewWeek)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}
	wantStart := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !rng.Start.Equal(wantStart) {
		t.Errorf("Sunday reference: start %v, want %v", rng.Start, wantStart)
	}
}

func TestResolveRange_Month(t *testing.T) {
	cases := []struct {
		ref  time.Time
		days int
	}{
		{time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 29}, // leap February
		{time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), 28},
		{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 31},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tc := range cases {
		rng, err := ResolveRange(tc.ref, ViewMonth)
		if err != nil {
			t.Fatalf("ResolveRange failed: %v", err)
		}
		if rng.Start.Day() != 1 {
			t.Errorf("%v: month starts on day %d", tc.ref, rng.Start.Day())
		}
		want := time.Duration(tc.days)*24*time.Hour - time.Millisecond
		if got := rng.End.Sub(rng.Start); got != want {
			t.Errorf("%v: span %v, want %v", tc.ref, got, want)
		}
	}
}

func TestResolveRange_StartBeforeEnd(t *testing.T) {
	ref := time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)
	for _, view := range []View{ViewDay, ViewWeek, ViewMonth} {
		rng, err := ResolveRange(ref, view)
		if err != nil {
			t.Fatalf("ResolveRange(%s) failed: %v", view, err)
		}
		if !rng.Start.Before(rng.End) {
			t.Errorf("%s: start %v not before end %v", view, rng.Start, rng.End)
		}
	}
}

func TestResolveRange_UnknownView(t *testing.T) {
	if _, err := ResolveRange(time.Now(), View("year")); err == nil {
		t.Error("expected error for unknown view")
	}
}
