package cost

import (
	"fmt"
	"math"
)

// Pre-2026 imbalance price margin (symmetric).
const pre2026Margin = 0.03

// Current-regime imbalance price parameters. These are regulatory cliff
// edges: the formulas below are discontinuous at the V threshold and at the
// price ceiling, and settlement amounts depend on hitting them exactly.
const (
	currentFloorPrice  = 0.0
	currentCeilPrice   = 3400.0
	currentMinBase     = 150.0 // V: minimum negative-side base, positive-side cliff
	currentBasePenalty = 100.0 // B: flat penalty base under the V cliff
	currentLowMargin   = 0.03
	currentHighMargin  = 0.06
	currentCeilMargin  = 0.05
)

// Default DSG tolerance fractions (absorbed before individual penalties).
const (
	DefaultDSGTolerancePre2026 = 0.10
	DefaultDSGToleranceCurrent = 0.05
)

// ImbalancePrices is the side-dependent unit price pair: Pos is what a party
// faces for being net short, Neg for being net long, both in TL/MWh.
type ImbalancePrices struct {
	Pos float64 `json:"pos"`
	Neg float64 `json:"neg"`
}

// ImbalanceCosts is the unit cost pair relative to the day-ahead price.
type ImbalanceCosts struct {
	Pos float64 `json:"pos"`
	Neg float64 `json:"neg"`
}

// PriceCosts bundles unit prices and costs, optionally with the unit KUPST
// cost. UnitKupst is nil when KUPST was not requested.
type PriceCosts struct {
	PosPrice  float64  `json:"pos_price"`
	NegPrice  float64  `json:"neg_price"`
	PosCost   float64  `json:"pos_cost"`
	NegCost   float64  `json:"neg_cost"`
	UnitKupst *float64 `json:"unit_kupst,omitempty"`
}

// ImbalanceParams tunes the unit price formulas. Nil selects the regulatory
// default; an explicit zero is meaningful.
type ImbalanceParams struct {
	// Margin overrides the pre-2026 symmetric margin (default 0.03); an
	// explicit zero disables it. It has no effect under the current regime,
	// whose margins are fixed.
	Margin *float64
}

// UnitImbalancePrices computes the unit imbalance price pair for one period.
func UnitImbalancePrices(mcp, smp float64, p RegulationPeriod, params ImbalanceParams) ImbalancePrices {
	switch p {
	case Pre2026:
		margin := pre2026Margin
		if params.Margin != nil {
			margin = *params.Margin
		}
		return ImbalancePrices{
			Pos: (1 - margin) * math.Min(mcp, smp),
			Neg: (1 + margin) * math.Max(mcp, smp),
		}
	default:
		return unitImbalancePricesCurrent(mcp, smp)
	}
}

// unitImbalancePricesCurrent implements the 2026 formula. Margin assignment
// follows the system imbalance direction read off mcp vs smp; at an exact tie
// the direction is inferred from the price extremes, and an interior tie
// (neither floor nor ceiling) applies the low margin to both sides.
func unitImbalancePricesCurrent(mcp, smp float64) ImbalancePrices {
	var posMargin, negMargin float64
	switch {
	case mcp > smp: // system surplus
		negMargin, posMargin = currentLowMargin, currentHighMargin
	case mcp < smp: // system deficit
		negMargin, posMargin = currentHighMargin, currentLowMargin
	case mcp == currentCeilPrice: // tie at ceiling: deficit direction
		negMargin, posMargin = currentHighMargin, currentLowMargin
	case mcp == currentFloorPrice: // tie at floor: surplus direction
		negMargin, posMargin = currentLowMargin, currentHighMargin
	default: // interior tie: balanced system
		negMargin, posMargin = currentLowMargin, currentLowMargin
	}

	ceilMultiplier := 1.0
	if math.Max(mcp, smp) == currentCeilPrice {
		ceilMultiplier = 1 + currentCeilMargin
	}
	neg := math.Max(math.Max(mcp, smp), currentMinBase) * (1 + negMargin) * ceilMultiplier

	rawPos := math.Min(mcp, smp)
	var pos float64
	if rawPos < currentMinBase {
		// Below V the short side pays a flat penalty: the price goes negative.
		pos = -currentBasePenalty * (1 + posMargin)
	} else {
		pos = rawPos * (1 - posMargin)
	}
	return ImbalancePrices{Pos: pos, Neg: neg}
}

// UnitImbalanceCosts derives the unit cost pair from the price pair:
// pos_cost = mcp - pos_price, neg_cost = neg_price - mcp.
func UnitImbalanceCosts(mcp, smp float64, p RegulationPeriod, params ImbalanceParams) ImbalanceCosts {
	prices := UnitImbalancePrices(mcp, smp, p, params)
	return ImbalanceCosts{
		Pos: mcp - prices.Pos,
		Neg: prices.Neg - mcp,
	}
}

// UnitPriceAndCosts returns prices and costs together, and, when withKupst is
// set, the unit KUPST cost for the same regime.
func UnitPriceAndCosts(mcp, smp float64, p RegulationPeriod, params ImbalanceParams, withKupst bool, kupst KupstParams) PriceCosts {
	prices := UnitImbalancePrices(mcp, smp, p, params)
	out := PriceCosts{
		PosPrice: prices.Pos,
		NegPrice: prices.Neg,
		PosCost:  mcp - prices.Pos,
		NegCost:  prices.Neg - mcp,
	}
	if withKupst {
		k := UnitKupstCost(mcp, smp, p, kupst)
		out.UnitKupst = &k
	}
	return out
}

// UnitImbalancePricesByContract resolves the regulation period from a
// contract code, then computes the price pair.
func UnitImbalancePricesByContract(mcp, smp float64, code string, params ImbalanceParams) (ImbalancePrices, error) {
	p, err := PeriodByContract(code)
	if err != nil {
		return ImbalancePrices{}, err
	}
	return UnitImbalancePrices(mcp, smp, p, params), nil
}

// UnitImbalanceCostsByContract resolves the regulation period from a contract
// code, then computes the cost pair.
func UnitImbalanceCostsByContract(mcp, smp float64, code string, params ImbalanceParams) (ImbalanceCosts, error) {
	p, err := PeriodByContract(code)
	if err != nil {
		return ImbalanceCosts{}, err
	}
	return UnitImbalanceCosts(mcp, smp, p, params), nil
}

// UnitPriceAndCostsByContract resolves the regulation period from a contract
// code, then computes the combined bundle.
func UnitPriceAndCostsByContract(mcp, smp float64, code string, params ImbalanceParams, withKupst bool, kupst KupstParams) (PriceCosts, error) {
	p, err := PeriodByContract(code)
	if err != nil {
		return PriceCosts{}, err
	}
	return UnitPriceAndCosts(mcp, smp, p, params, withKupst, kupst), nil
}

// ImbalanceAmount is the signed imbalance of one party for one period, raw
// and after DSG tolerance. Positive always means the party is net long
// relative to its commitment, for producers and consumers alike.
type ImbalanceAmount struct {
	Raw float64 `json:"raw"`
	// Adjusted has the full tolerance band removed, clamped toward zero.
	Adjusted float64 `json:"adjusted"`
	// MultiplierAdjusted removes only the multiplier-scaled share of the band.
	MultiplierAdjusted float64 `json:"multiplier_adjusted"`
}

// AmountParams tunes the imbalance amount computation. Nil pointers select
// the defaults; explicit zero overrides are meaningful (a zero tolerance
// disables the band).
type AmountParams struct {
	// DSGTolerance is the absorbable tolerance fraction of |actual|.
	// Defaults: 0.10 pre-2026, 0.05 current.
	DSGTolerance *float64
	// ToleranceMultiplier scales the band for partial absorption, in [0, 1].
	// Defaults to 1.
	ToleranceMultiplier *float64
}

// RawImbalance computes the signed raw imbalance. The consumer framing is
// mirrored so that a positive value always means net long.
func RawImbalance(actual, forecast float64, isProducer bool) float64 {
	if isProducer {
		return actual - forecast
	}
	return forecast - actual
}

// CalculateImbalance computes the raw imbalance and its tolerance-adjusted
// residuals for one party and period.
func CalculateImbalance(actual, forecast float64, isProducer bool, p RegulationPeriod, params AmountParams) (ImbalanceAmount, error) {
	tolerance := DefaultDSGToleranceCurrent
	if p == Pre2026 {
		tolerance = DefaultDSGTolerancePre2026
	}
	if params.DSGTolerance != nil {
		tolerance = *params.DSGTolerance
	}
	multiplier := 1.0
	if params.ToleranceMultiplier != nil {
		multiplier = *params.ToleranceMultiplier
	}
	if multiplier < 0 || multiplier > 1 {
		return ImbalanceAmount{}, fmt.Errorf("%w: tolerance multiplier %v outside [0, 1]", ErrInvalidArgument, multiplier)
	}

	raw := RawImbalance(actual, forecast, isProducer)
	band := tolerance * math.Abs(actual)
	return ImbalanceAmount{
		Raw:                raw,
		Adjusted:           shrinkTowardZero(raw, band),
		MultiplierAdjusted: shrinkTowardZero(raw, band*multiplier),
	}, nil
}

// shrinkTowardZero removes band from raw's magnitude without overshooting
// past zero.
func shrinkTowardZero(raw, band float64) float64 {
	if raw < 0 {
		return math.Min(raw+band, 0)
	}
	return math.Max(raw-band, 0)
}

// Kupsm computes the penalized capacity-deviation magnitude:
// max(0, |forecast - actual| - tolerance*forecast). The tolerance base is the
// forecast, unlike the DSG band which scales with the actual; the asymmetry
// is regulation behavior.
func Kupsm(actual, forecast, tolerance float64) float64 {
	return math.Max(0, math.Abs(forecast-actual)-tolerance*forecast)
}
