package contract

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultGateOpenHour is the local hour on the day before delivery at
	// which trading for a contract opens.
	DefaultGateOpenHour = 18
	// DefaultGateCloseLead is how long before the delivery instant the gate
	// closes.
	DefaultGateCloseLead = time.Hour
)

// GateOpen returns the instant trading opens for a contract: openHour o'clock
// on the calendar day before delivery.
func GateOpen(code string, openHour int) (time.Time, error) {
	if openHour < 0 || openHour > 23 {
		return time.Time{}, fmt.Errorf("%w: gate open hour %d outside [0, 23]", ErrInvalidArgument, openHour)
	}
	delivery, err := ToTime(code)
	if err != nil {
		return time.Time{}, err
	}
	prev := delivery.AddDate(0, 0, -1)
	return time.Date(prev.Year(), prev.Month(), prev.Day(), openHour, 0, 0, 0, Zone), nil
}

// GateClose returns the instant trading closes for a contract: lead before the
// delivery instant.
func GateClose(code string, lead time.Duration) (time.Time, error) {
	if lead < 0 {
		return time.Time{}, fmt.Errorf("%w: gate close lead must be >= 0", ErrInvalidArgument)
	}
	delivery, err := ToTime(code)
	if err != nil {
		return time.Time{}, err
	}
	return delivery.Add(-lead), nil
}

// CloseReference selects the reference instant for remaining-time queries.
// Precedence when several are set: Timestamp, then Time, then ISO; all unset
// means "now".
type CloseReference struct {
	Timestamp    int64
	HasTimestamp bool
	Time         time.Time
	ISO          string
}

func (r CloseReference) resolve() (time.Time, error) {
	switch {
	case r.HasTimestamp:
		return time.Unix(r.Timestamp, 0).In(Zone), nil
	case !r.Time.IsZero():
		return r.Time, nil
	case r.ISO != "":
		return ParseISO(r.ISO)
	default:
		return time.Now().In(Zone), nil
	}
}

// SecondsToClose returns the signed seconds from ref until the contract's gate
// close (negative once closed). A zero ref means "now".
func SecondsToClose(code string, ref time.Time, lead time.Duration) (int64, error) {
	return SecondsToCloseAt(code, CloseReference{Time: ref}, lead)
}

// SecondsToCloseAt is SecondsToClose with an explicit reference selector.
func SecondsToCloseAt(code string, ref CloseReference, lead time.Duration) (int64, error) {
	closeAt, err := GateClose(code, lead)
	if err != nil {
		return 0, err
	}
	at, err := ref.resolve()
	if err != nil {
		return 0, err
	}
	return int64(closeAt.Sub(at) / time.Second), nil
}

// RemainingFormat configures FormatRemaining.
type RemainingFormat struct {
	DayLabel    string
	HourLabel   string
	MinuteLabel string
	SecondLabel string
	// Closed is rendered when no time remains.
	Closed string
}

// DefaultRemainingFormat mirrors the market front-end labels.
var DefaultRemainingFormat = RemainingFormat{
	DayLabel:    "DD",
	HourLabel:   "HH",
	MinuteLabel: "mm",
	SecondLabel: "ss",
	Closed:      "-",
}

// FormatRemaining renders seconds-to-close largest unit first, omitting
// leading zero-valued units, e.g. "3HH 25mm 10ss". Non-positive input renders
// the Closed placeholder.
func FormatRemaining(seconds int64, f RemainingFormat) string {
	if seconds <= 0 {
		return f.Closed
	}
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60

	parts := []struct {
		value int64
		label string
	}{
		{days, f.DayLabel},
		{hours, f.HourLabel},
		{minutes, f.MinuteLabel},
		{secs, f.SecondLabel},
	}
	var out []string
	for _, p := range parts {
		if len(out) == 0 && p.value == 0 && p.label != f.SecondLabel {
			continue
		}
		out = append(out, fmt.Sprintf("%d%s", p.value, p.label))
	}
	return strings.Join(out, " ")
}
