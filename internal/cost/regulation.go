// Package cost implements the imbalance and capacity-deviation (KUPST)
// settlement formulas of the market, under both the pre-2026 and the current
// regulatory regimes. Everything here is a pure function over numeric and
// string inputs; regime dispatch is centralized so callers never branch on the
// regulation period themselves.
package cost

import (
	"errors"
	"fmt"

	"epias-settlement/internal/contract"
)

var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// RegulationPeriod selects the applicable version of the settlement rules.
// The set is closed: every formula in this package matches exhaustively over
// it, so an unknown period is unrepresentable past ParsePeriod.
type RegulationPeriod int

const (
	// Pre2026 covers delivery periods before 2026-01-01.
	Pre2026 RegulationPeriod = iota
	// Current covers delivery periods from 2026-01-01 on.
	Current
)

// boundaryDigits is the embedded date of the first contract settled under the
// current regime (PH26010100).
const boundaryDigits = "26010100"

func (p RegulationPeriod) String() string {
	switch p {
	case Pre2026:
		return "pre_2026"
	default:
		return "current"
	}
}

// ParsePeriod resolves a regulation period literal. "26_01" is a synonym for
// "current".
func ParsePeriod(s string) (RegulationPeriod, error) {
	switch s {
	case "pre_2026":
		return Pre2026, nil
	case "current", "26_01":
		return Current, nil
	default:
		return 0, fmt.Errorf("%w: unknown regulation period %q", ErrInvalidArgument, s)
	}
}

// PeriodByContract resolves the regulation period from a contract code by
// comparing its embedded date digits against the 2026-01-01 boundary.
func PeriodByContract(code string) (RegulationPeriod, error) {
	if _, err := contract.Parse(code); err != nil {
		return 0, err
	}
	if code[2:10] < boundaryDigits {
		return Pre2026, nil
	}
	return Current, nil
}
