package reminders

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDateFixedDaySteps(t *testing.T) {
	current := date(2025, time.March, 10)

	cases := []struct {
		kind RecurringType
		want time.Time
	}{
		{RecurDaily, date(2025, time.March, 11)},
		{RecurWeekly, date(2025, time.March, 17)},
		{RecurBiweekly, date(2025, time.March, 24)},
	}

	for _, tc := range cases {
		got := NextDueDate(current, tc.kind, 0)
		if !got.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.kind, tc.want, got)
		}
	}
}

func TestNextDueDateMonthlyKeepsDay(t *testing.T) {
	got := NextDueDate(date(2025, time.January, 15), RecurMonthly, 0)
	if !got.Equal(date(2025, time.February, 15)) {
		t.Fatalf("expected 2025-02-15, got %v", got)
	}
}

func TestNextDueDateMonthlyClampsToEndOfMonth(t *testing.T) {
	got := NextDueDate(date(2025, time.January, 31), RecurMonthly, 0)
	if !got.Equal(date(2025, time.February, 28)) {
		t.Fatalf("expected 2025-02-28, got %v", got)
	}
}

func TestNextDueDateMonthlyClampsToLeapDay(t *testing.T) {
	got := NextDueDate(date(2024, time.January, 31), RecurMonthly, 0)
	if !got.Equal(date(2024, time.February, 29)) {
		t.Fatalf("expected 2024-02-29, got %v", got)
	}
}

func TestNextDueDateMonthSteps(t *testing.T) {
	current := date(2025, time.January, 31)

	cases := []struct {
		kind RecurringType
		want time.Time
	}{
		{RecurBimonthly, date(2025, time.March, 31)},
		{RecurQuarterly, date(2025, time.April, 30)},
		{RecurSemiAnnual, date(2025, time.July, 31)},
	}

	for _, tc := range cases {
		got := NextDueDate(current, tc.kind, 0)
		if !got.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.kind, tc.want, got)
		}
	}
}

func TestNextDueDateAnnualClampsLeapDay(t *testing.T) {
	got := NextDueDate(date(2024, time.February, 29), RecurAnnual, 0)
	if !got.Equal(date(2025, time.February, 28)) {
		t.Fatalf("expected 2025-02-28, got %v", got)
	}
}

func TestNextDueDateCustom(t *testing.T) {
	got := NextDueDate(date(2025, time.March, 1), RecurCustom, 45)
	if !got.Equal(date(2025, time.April, 15)) {
		t.Fatalf("expected 2025-04-15, got %v", got)
	}
}

func TestNextDueDateCustomFallsBackToThirtyDays(t *testing.T) {
	got := NextDueDate(date(2025, time.March, 1), RecurCustom, 0)
	if !got.Equal(date(2025, time.March, 31)) {
		t.Fatalf("expected 2025-03-31, got %v", got)
	}
}

func TestNextDueDateUnknownKindDefaultsToMonthly(t *testing.T) {
	got := NextDueDate(date(2025, time.May, 31), RecurringType("BOGUS"), 0)
	if !got.Equal(date(2025, time.June, 30)) {
		t.Fatalf("expected 2025-06-30, got %v", got)
	}
}
