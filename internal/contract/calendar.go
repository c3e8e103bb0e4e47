package contract

import "time"

// DefaultSettlementDay is the day of month on which the previous month's
// settlement data is expected to be finalized.
const DefaultSettlementDay = 15

// DateLayout is the date-only string form used by the calendar helpers.
const DateLayout = "2006-01-02"

// FormatDate renders a time as a date-only string.
func FormatDate(t time.Time) string {
	return t.In(Zone).Format(DateLayout)
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	l := t.In(Zone)
	return time.Date(l.Year(), l.Month(), 1, 0, 0, 0, 0, Zone)
}

// EndOfMonth returns midnight on the last day of t's month.
//
// The walk is deliberate: day 1 plus 31 days always lands in the following
// month, then backing up to day 1 and subtracting one day lands on the last
// day of the original month. Kept as-is so every month, February and leap
// years included, resolves exactly the way downstream settlement dates expect.
func EndOfMonth(t time.Time) time.Time {
	first := StartOfMonth(t)
	next := first.AddDate(0, 0, 31)
	nextFirst := time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, Zone)
	return nextFirst.AddDate(0, 0, -1)
}

// StartOfYear returns midnight on January 1 of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.In(Zone).Year(), time.January, 1, 0, 0, 0, 0, Zone)
}

// EndOfYear returns midnight on December 31 of t's year.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.In(Zone).Year(), time.December, 31, 0, 0, 0, 0, Zone)
}

// NextDay returns midnight on the day after t.
func NextDay(t time.Time) time.Time {
	l := t.In(Zone)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Zone).AddDate(0, 0, 1)
}

// PrevDay returns midnight on the day before t.
func PrevDay(t time.Time) time.Time {
	l := t.In(Zone)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Zone).AddDate(0, 0, -1)
}

// MonthBounds returns t's calendar month as a (start, end) date-string pair.
func MonthBounds(t time.Time) (string, string) {
	return FormatDate(StartOfMonth(t)), FormatDate(EndOfMonth(t))
}

// SettlementDate returns midnight on the given day of the month following
// ref's month. December rolls over into January of the next year.
func SettlementDate(ref time.Time, day int) time.Time {
	l := ref.In(Zone)
	year, month := l.Year(), l.Month()
	if month == time.December {
		year++
		month = time.January
	} else {
		month++
	}
	return time.Date(year, month, day, 0, 0, 0, 0, Zone)
}

// IsSettled reports whether now is at or past ref's settlement date, i.e.
// whether the settlement data for ref's period should be final. A zero now
// means the current instant.
func IsSettled(ref, now time.Time, day int) bool {
	if now.IsZero() {
		now = time.Now()
	}
	return !now.Before(SettlementDate(ref, day))
}
