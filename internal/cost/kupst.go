package cost

import (
	"math"
	"strings"
)

// DefaultKupstFloorPrice is the regulatory floor of the KUPST price base, in
// TL/MWh. The unit cost is never computed from a reference price below it.
const DefaultKupstFloorPrice = 750.0

// Pre-2026 KUPST multipliers.
const (
	pre2026KupstMultiplier            = 0.03
	pre2026KupstMaintenanceMultiplier = 0.05
)

// Current-regime KUPST multipliers.
const (
	currentKupstMultiplier            = 0.05
	currentKupstMaintenanceMultiplier = 0.08
)

// currentKupstSourceMultipliers overrides the current-regime default per
// production source. A source entry takes precedence over the
// maintenance-penalty default.
var currentKupstSourceMultipliers = map[string]float64{
	"battery":    0.10,
	"aggregator": 0.05,
	"unlicensed": 0.02,
}

// KupstParams tunes the unit KUPST cost. Zero values select the regulatory
// defaults for the regime.
type KupstParams struct {
	// Multiplier overrides every default when non-zero.
	Multiplier float64
	// FloorPrice overrides DefaultKupstFloorPrice when non-zero.
	FloorPrice float64
	// MaintenancePenalty selects the raised multiplier for deviations during
	// unnotified maintenance.
	MaintenancePenalty bool
	// Source selects a per-source multiplier under the current regime.
	Source string
}

// UnitKupstCost computes the capacity-deviation penalty per MWh of deviation:
// max(mcp, smp, floor) times the regime's multiplier.
func UnitKupstCost(mcp, smp float64, p RegulationPeriod, params KupstParams) float64 {
	floor := params.FloorPrice
	if floor == 0 {
		floor = DefaultKupstFloorPrice
	}
	base := math.Max(math.Max(mcp, smp), floor)
	return base * kupstMultiplier(p, params)
}

func kupstMultiplier(p RegulationPeriod, params KupstParams) float64 {
	if params.Multiplier != 0 {
		return params.Multiplier
	}
	switch p {
	case Pre2026:
		if params.MaintenancePenalty {
			return pre2026KupstMaintenanceMultiplier
		}
		return pre2026KupstMultiplier
	default:
		if s := strings.ToLower(strings.TrimSpace(params.Source)); s != "" {
			if m, ok := currentKupstSourceMultipliers[s]; ok {
				return m
			}
		}
		if params.MaintenancePenalty {
			return currentKupstMaintenanceMultiplier
		}
		return currentKupstMultiplier
	}
}

// UnitKupstCostByContract resolves the regulation period from a contract code,
// then computes the unit KUPST cost.
func UnitKupstCostByContract(mcp, smp float64, code string, params KupstParams) (float64, error) {
	p, err := PeriodByContract(code)
	if err != nil {
		return 0, err
	}
	return UnitKupstCost(mcp, smp, p, params), nil
}
