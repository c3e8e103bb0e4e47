// Package contract implements the time algebra for market delivery periods:
// conversions between calendar time, Unix timestamps and contract codes, plus
// derived calendar queries (gate times, ranges, settlement dates).
//
// All market times live in a fixed UTC+3 civil timezone. Contract codes encode
// that timezone's calendar and never any other.
package contract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Zone is the fixed civil timezone of the market. Every embedded contract
// date/hour is expressed in it.
var Zone = time.FixedZone("UTC+3", 3*60*60)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

const (
	hourlyPrefix = "PH"
	blockPrefix  = "PB"

	// codeLayout is yyMMddHH. Two-digit years always mean 2000+YY.
	codeLayout = "06010215"
)

// Contract is a parsed contract code.
type Contract struct {
	Code string
	// Time is the encoded delivery hour in Zone.
	Time time.Time
	// BlockHours is the block span in hours; 0 for hourly contracts.
	BlockHours int
}

// FromTime converts a datetime to an hourly contract code, truncating to the
// hour in UTC+3. A zero time passes through as an empty code so optional-field
// call sites can propagate absence without special-casing.
func FromTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return hourlyPrefix + t.In(Zone).Format(codeLayout)
}

// FromTimeBlock converts a datetime to a block contract code spanning
// blockHours contiguous hours ending at the encoded hour.
func FromTimeBlock(t time.Time, blockHours int) (string, error) {
	if blockHours < 1 || blockHours > 24 {
		return "", fmt.Errorf("%w: block hours %d outside [1, 24]", ErrInvalidArgument, blockHours)
	}
	if t.IsZero() {
		return "", nil
	}
	return fmt.Sprintf("%s%s-%02d", blockPrefix, t.In(Zone).Format(codeLayout), blockHours), nil
}

// FromTimestamp converts a Unix timestamp to an hourly contract code.
func FromTimestamp(ts int64) string {
	return FromTime(time.Unix(ts, 0).In(Zone))
}

// FromISO converts an ISO-8601 datetime string to an hourly contract code.
// An empty input yields an empty code and no error.
func FromISO(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := ParseISO(s)
	if err != nil {
		return "", err
	}
	return FromTime(t), nil
}

// Parse splits a contract code into its delivery hour and block span.
func Parse(code string) (Contract, error) {
	if len(code) < 2 {
		return Contract{}, fmt.Errorf("%w: contract code %q too short", ErrInvalidDateFormat, code)
	}
	prefix := code[:2]
	rest := code[2:]

	blockHours := 0
	switch prefix {
	case hourlyPrefix:
		// nothing extra
	case blockPrefix:
		i := strings.IndexByte(rest, '-')
		if i != 8 || len(rest) != 11 {
			return Contract{}, fmt.Errorf("%w: malformed block contract %q", ErrInvalidDateFormat, code)
		}
		n, err := strconv.Atoi(rest[9:])
		if err != nil {
			return Contract{}, fmt.Errorf("%w: malformed block span in %q", ErrInvalidDateFormat, code)
		}
		if n < 1 || n > 24 {
			return Contract{}, fmt.Errorf("%w: block hours %d outside [1, 24]", ErrInvalidArgument, n)
		}
		blockHours = n
		rest = rest[:8]
	default:
		return Contract{}, fmt.Errorf("%w: unknown contract prefix %q", ErrInvalidDateFormat, prefix)
	}

	if len(rest) != 8 {
		return Contract{}, fmt.Errorf("%w: contract code %q must embed 8 digits", ErrInvalidDateFormat, code)
	}
	t, err := time.ParseInLocation(codeLayout, rest, Zone)
	if err != nil {
		return Contract{}, fmt.Errorf("%w: contract code %q: %v", ErrInvalidDateFormat, code, err)
	}
	return Contract{Code: code, Time: t, BlockHours: blockHours}, nil
}

// ToTime returns the delivery hour of a contract in UTC+3.
func ToTime(code string) (time.Time, error) {
	c, err := Parse(code)
	if err != nil {
		return time.Time{}, err
	}
	return c.Time, nil
}

// ToTimestamp returns the delivery hour of a contract as a Unix timestamp.
func ToTimestamp(code string) (int64, error) {
	t, err := ToTime(code)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

// ToISO returns the delivery hour of a contract as an ISO-8601 string with
// second precision and the UTC+3 offset.
func ToISO(code string) (string, error) {
	t, err := ToTime(code)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

// isoLayouts are the accepted ISO-8601 shapes, most specific first. Layouts
// without an offset are interpreted in Zone.
var isoLayouts = []struct {
	layout string
	naive  bool
}{
	{time.RFC3339, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", true},
}

// ParseISO parses an ISO-8601 datetime string. Offset-less strings are taken
// as UTC+3 civil time.
func ParseISO(s string) (time.Time, error) {
	for _, l := range isoLayouts {
		var t time.Time
		var err error
		if l.naive {
			t, err = time.ParseInLocation(l.layout, s, Zone)
		} else {
			t, err = time.Parse(l.layout, s)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 datetime", ErrInvalidDateFormat, s)
}

// ParseHourAligned parses an ISO-8601 string and reports whether it is exactly
// hour-aligned market time: minute, second and sub-second all zero, offset
// exactly UTC+3. Returns ok=false (and a zero time) on any violation or parse
// failure.
func ParseHourAligned(s string) (time.Time, bool) {
	t, err := ParseISO(s)
	if err != nil {
		return time.Time{}, false
	}
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return time.Time{}, false
	}
	_, offset := t.Zone()
	if offset != 3*60*60 {
		return time.Time{}, false
	}
	return t.In(Zone), true
}

// NormalizeHour parses an ISO-8601 string and force-aligns it to market time:
// sub-hour fields are zeroed and the wall clock is re-read in UTC+3, whatever
// offset the input carried.
func NormalizeHour(s string) (time.Time, error) {
	t, err := ParseISO(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, Zone), nil
}

// Hour returns a contract's delivery hour as a 2-digit string.
func Hour(code string) (string, error) {
	t, err := ToTime(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", t.Hour()), nil
}

// Day returns a contract's day of month as a 2-digit string.
func Day(code string) (string, error) {
	t, err := ToTime(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", t.Day()), nil
}

// WeekdayFormat selects the rendering of Weekday.
type WeekdayFormat int

const (
	// WeekdayNumeric renders "0" (Sunday) through "6" (Saturday).
	WeekdayNumeric WeekdayFormat = iota
	// WeekdayEnglish renders the 3-letter English abbreviation.
	WeekdayEnglish
	// WeekdayTurkish renders the 3-letter Turkish abbreviation.
	WeekdayTurkish
)

var turkishWeekdays = map[string]string{
	"Mon": "Pzt",
	"Tue": "Sal",
	"Wed": "Çar",
	"Thu": "Per",
	"Fri": "Cum",
	"Sat": "Cmt",
	"Sun": "Paz",
}

// TurkishWeekday maps a 3-letter English weekday abbreviation to its Turkish
// counterpart. Unknown input passes through unchanged.
func TurkishWeekday(abbr string) string {
	if tr, ok := turkishWeekdays[abbr]; ok {
		return tr
	}
	return abbr
}

// Weekday returns a contract's delivery weekday in the requested format.
func Weekday(code string, format WeekdayFormat) (string, error) {
	t, err := ToTime(code)
	if err != nil {
		return "", err
	}
	switch format {
	case WeekdayNumeric:
		return strconv.Itoa(int(t.Weekday())), nil
	case WeekdayEnglish:
		return t.Format("Mon"), nil
	case WeekdayTurkish:
		return TurkishWeekday(t.Format("Mon")), nil
	default:
		return "", fmt.Errorf("%w: unknown weekday format %d", ErrInvalidArgument, format)
	}
}
