// Package series runs the settlement engine over a series of delivery
// periods, producing a per-period ledger, aggregate totals and a CSV export.
package series

import (
	"fmt"

	"epias-settlement/internal/contract"
	"epias-settlement/internal/cost"
)

// Party identifies the market party being settled.
type Party struct {
	Name       string `json:"name,omitempty"`
	IsProducer bool   `json:"is_producer"`
	// Source is the production source category; required for producers.
	Source string `json:"source,omitempty"`
}

type Engine struct {
	Params cost.SettlementParams
}

func New() *Engine { return &Engine{} }

// Run settles every period of a series for one party. A failure on any period
// aborts the run: a bad period must surface as an error, never as a zero-cost
// row that would silently skew the totals.
func (e *Engine) Run(periods []Period, party Party) (*Result, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("no periods")
	}

	ledger := make([]LedgerRow, 0, len(periods))
	var cumCost, totalImbalance, totalKupst float64

	for idx, p := range periods {
		delivery, err := contract.ToTime(p.Contract)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", idx, err)
		}
		regPeriod, err := cost.PeriodByContract(p.Contract)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", idx, err)
		}

		res, err := cost.CalculateDiffCosts(cost.SettlementInput{
			Forecast:   p.Forecast,
			Actual:     p.Actual,
			IsProducer: party.IsProducer,
			MCP:        p.MCP,
			SMP:        p.SMP,
			Source:     party.Source,
			Period:     regPeriod,
		}, e.Params)
		if err != nil {
			return nil, fmt.Errorf("period %d settle %s: %w", idx, p.Contract, err)
		}

		cumCost += res.Total()
		totalImbalance += res.ImbalanceCost

		row := LedgerRow{
			Index:    idx,
			Contract: p.Contract,
			Delivery: delivery,
			Period:   regPeriod.String(),

			MCP: p.MCP,
			SMP: p.SMP,

			Forecast: p.Forecast,
			Actual:   p.Actual,

			ImbalanceQty:  res.ImbalanceQty,
			AdjustedQty:   res.AdjustedQty,
			ImbalanceCost: res.ImbalanceCost,

			PeriodCost: res.Total(),
			CumCost:    cumCost,
		}
		if res.Producer != nil {
			row.Kupsm = res.Producer.Kupsm
			row.KupstCost = res.Producer.KupstCost
			totalKupst += res.Producer.KupstCost
		}
		ledger = append(ledger, row)
	}

	return &Result{
		Ledger:             ledger,
		Producer:           party.IsProducer,
		TotalImbalanceCost: totalImbalance,
		TotalKupstCost:     totalKupst,
		TotalCost:          cumCost,
	}, nil
}
