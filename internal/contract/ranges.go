package contract

import (
	"fmt"
	"time"
)

// Range enumerates every hourly contract between two calendar dates,
// inclusive, in chronological order (hours 00 through 23 of each day). The
// time-of-day of the arguments is ignored. An end before the start yields nil.
func Range(start, end time.Time) []string {
	s := start.In(Zone)
	e := end.In(Zone)
	first := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, Zone)
	last := time.Date(e.Year(), e.Month(), e.Day(), 23, 0, 0, 0, Zone)
	if last.Before(first) {
		return nil
	}
	var out []string
	for t := first; !t.After(last); t = t.Add(time.Hour) {
		out = append(out, FromTime(t))
	}
	return out
}

// RangeDates is Range over ISO-8601 date strings.
func RangeDates(startISO, endISO string) ([]string, error) {
	start, err := ParseISO(startISO)
	if err != nil {
		return nil, err
	}
	end, err := ParseISO(endISO)
	if err != nil {
		return nil, err
	}
	return Range(start, end), nil
}

// Around returns the hourly contracts surrounding code, nBefore hours back
// through nAfter hours forward, sorted chronologically. The center contract is
// part of the conceptual range and is emitted unless includeCenter is false.
func Around(code string, nBefore, nAfter int, includeCenter bool) ([]string, error) {
	if nBefore < 0 || nAfter < 0 {
		return nil, fmt.Errorf("%w: contract counts must be >= 0", ErrInvalidArgument)
	}
	center, err := ToTime(code)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, nBefore+nAfter+1)
	for i := -nBefore; i <= nAfter; i++ {
		if i == 0 && !includeCenter {
			continue
		}
		out = append(out, FromTime(center.Add(time.Duration(i)*time.Hour)))
	}
	return out, nil
}

// ActiveContracts enumerates the contracts of the rolling intraday trading
// window at now: from two hours ahead through 23:00 of the current day,
// extended to the next day's 23:00 once the local hour reaches 18.
func ActiveContracts(now time.Time) []string {
	local := now.In(Zone)
	first := local.Truncate(time.Hour).Add(2 * time.Hour)
	first = time.Date(first.Year(), first.Month(), first.Day(), first.Hour(), 0, 0, 0, Zone)

	last := time.Date(local.Year(), local.Month(), local.Day(), 23, 0, 0, 0, Zone)
	if local.Hour() >= 18 {
		last = last.AddDate(0, 0, 1)
	}

	var out []string
	for t := first; !t.After(last); t = t.Add(time.Hour) {
		out = append(out, FromTime(t))
	}
	return out
}
