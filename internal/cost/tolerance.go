package cost

import "strings"

// defaultKupstTolerance applies to any production source without an explicit
// table entry, in both regimes.
const defaultKupstTolerance = 0.05

// KupstTolerance returns the capacity-deviation tolerance fraction for a
// production source. Unknown sources fall back to the default tolerance;
// this never fails.
func KupstTolerance(source string, p RegulationPeriod) float64 {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "sun" {
		s = "solar"
	}
	switch p {
	case Pre2026:
		switch s {
		case "wind":
			return 0.17
		case "solar":
			return 0.10
		}
	case Current:
		switch s {
		case "wind":
			return 0.15
		case "solar":
			return 0.08
		case "unlicensed":
			return 0.20
		}
	}
	return defaultKupstTolerance
}

// KupstToleranceByContract resolves the regulation period from a contract
// code, then looks up the tolerance.
func KupstToleranceByContract(source, code string) (float64, error) {
	p, err := PeriodByContract(code)
	if err != nil {
		return 0, err
	}
	return KupstTolerance(source, p), nil
}
