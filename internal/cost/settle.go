package cost

import (
	"fmt"
	"math"
)

// SettlementInput is one party's position for one settlement period.
type SettlementInput struct {
	Forecast   float64
	Actual     float64
	IsProducer bool
	MCP        float64
	SMP        float64
	// Source is the production source category; required for producers.
	Source string
	Period RegulationPeriod
}

// SettlementParams tunes the settlement computation. The zero value selects
// every regulatory default.
type SettlementParams struct {
	Imbalance ImbalanceParams
	Kupst     KupstParams
	Amount    AmountParams
}

// ProducerCosts holds the capacity-deviation leg of a settlement. It exists
// only for producers; consumers have no KUPST concept, so the whole struct is
// absent rather than zeroed.
type ProducerCosts struct {
	Kupsm     float64 `json:"kupsm"`
	KupstCost float64 `json:"kupst_cost"`
	TotalCost float64 `json:"total_cost"`
}

// SettlementCosts is the monetary outcome of one period's settlement.
type SettlementCosts struct {
	// ImbalanceQty is the signed raw imbalance (positive = net long).
	ImbalanceQty float64 `json:"imbalance_qty"`
	// AdjustedQty is the residual after the DSG tolerance band, scaled by the
	// tolerance multiplier, is absorbed. The imbalance cost is always priced
	// on the raw quantity; the adjusted quantity reports how much of the
	// deviation the group tolerance covers.
	AdjustedQty float64 `json:"adjusted_qty"`
	// ImbalanceCost is |quantity| priced on the side the sign selects.
	ImbalanceCost float64 `json:"imbalance_cost"`
	// Producer is nil for consumers.
	Producer *ProducerCosts `json:"producer,omitempty"`
}

// Total returns the period's full monetary cost: the producer total when
// present, otherwise the imbalance cost alone.
func (s SettlementCosts) Total() float64 {
	if s.Producer != nil {
		return s.Producer.TotalCost
	}
	return s.ImbalanceCost
}

// CalculateDiffCosts computes the settlement cost of one forecast/actual pair
// for one period. Producers must supply a production source; their result
// additionally carries the KUPSM quantity, the KUPST cost and the combined
// total.
func CalculateDiffCosts(in SettlementInput, params SettlementParams) (SettlementCosts, error) {
	amount, err := CalculateImbalance(in.Actual, in.Forecast, in.IsProducer, in.Period, params.Amount)
	if err != nil {
		return SettlementCosts{}, err
	}
	qty := amount.Raw

	var kupsm float64
	if in.IsProducer {
		if in.Source == "" {
			return SettlementCosts{}, fmt.Errorf("%w: production source is required for producer settlement", ErrMissingParameter)
		}
		tolerance := KupstTolerance(in.Source, in.Period)
		kupsm = Kupsm(in.Actual, in.Forecast, tolerance)
	}

	kupstParams := params.Kupst
	if kupstParams.Source == "" {
		kupstParams.Source = in.Source
	}
	bundle := UnitPriceAndCosts(in.MCP, in.SMP, in.Period, params.Imbalance, in.IsProducer, kupstParams)

	unitCost := bundle.PosCost
	if qty < 0 {
		unitCost = bundle.NegCost
	}
	out := SettlementCosts{
		ImbalanceQty:  qty,
		AdjustedQty:   amount.MultiplierAdjusted,
		ImbalanceCost: math.Abs(qty) * unitCost,
	}

	if in.IsProducer {
		kupstCost := kupsm * *bundle.UnitKupst
		out.Producer = &ProducerCosts{
			Kupsm:     kupsm,
			KupstCost: kupstCost,
			TotalCost: out.ImbalanceCost + kupstCost,
		}
	}
	return out, nil
}

// CalculateDiffCostsByContract resolves the regulation period from a contract
// code, then settles.
func CalculateDiffCostsByContract(code string, in SettlementInput, params SettlementParams) (SettlementCosts, error) {
	p, err := PeriodByContract(code)
	if err != nil {
		return SettlementCosts{}, err
	}
	in.Period = p
	return CalculateDiffCosts(in, params)
}

// CalculateDiffCostsSeries settles many periods at once over parallel slices.
// Element i of the result equals the scalar call on element i of every input;
// mismatched lengths fail before any element is computed.
func CalculateDiffCostsSeries(contracts []string, forecasts, actuals, mcps, smps []float64, isProducer bool, source string, params SettlementParams) ([]SettlementCosts, error) {
	n := len(contracts)
	if len(forecasts) != n || len(actuals) != n || len(mcps) != n || len(smps) != n {
		return nil, fmt.Errorf("%w: input lists must have equal lengths (contracts=%d forecasts=%d actuals=%d mcps=%d smps=%d)",
			ErrInvalidArgument, n, len(forecasts), len(actuals), len(mcps), len(smps))
	}
	out := make([]SettlementCosts, 0, n)
	for i := 0; i < n; i++ {
		res, err := CalculateDiffCostsByContract(contracts[i], SettlementInput{
			Forecast:   forecasts[i],
			Actual:     actuals[i],
			IsProducer: isProducer,
			MCP:        mcps[i],
			SMP:        smps[i],
			Source:     source,
		}, params)
		if err != nil {
			return nil, fmt.Errorf("contract %s (index %d): %w", contracts[i], i, err)
		}
		out = append(out, res)
	}
	return out, nil
}
