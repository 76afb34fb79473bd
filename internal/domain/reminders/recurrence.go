package reminders

import "time"

// NextDueDate computes the due date that follows current for the given
// recurrence kind. Month and year steps clamp to the end of the target
// month (Jan 31 +1 month is the last day of February). CUSTOM falls back
// to 30 days when customDays is not positive.
func NextDueDate(current time.Time, kind RecurringType, customDays int) time.Time {
	switch kind {
	case RecurDaily:
		return current.AddDate(0, 0, 1)
	case RecurWeekly:
		return current.AddDate(0, 0, 7)
	case RecurBiweekly:
		return current.AddDate(0, 0, 14)
	case RecurMonthly:
		return addMonthsClamped(current, 1)
	case RecurBimonthly:
		return addMonthsClamped(current, 2)
	case RecurQuarterly:
		return addMonthsClamped(current, 3)
	case RecurSemiAnnual:
		return addMonthsClamped(current, 6)
	case RecurAnnual:
		return addMonthsClamped(current, 12)
	case RecurCustom:
		if customDays <= 0 {
			customDays = 30
		}
		return current.AddDate(0, 0, customDays)
	default:
		return addMonthsClamped(current, 1)
	}
}

// addMonthsClamped steps the calendar month and clamps the day-of-month,
// unlike time.AddDate which normalizes Jan 31 +1 month into March.
func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, date.Location())
	first = first.AddDate(0, months, 0)

	if max := daysInMonth(first.Month(), first.Year()); day > max {
		day = max
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, date.Location())
}

func daysInMonth(month time.Month, year int) int {
	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
