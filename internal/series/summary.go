package series

// Summary aggregates a settlement run for reporting.
type Summary struct {
	Periods int `json:"periods"`

	TotalImbalanceCost float64 `json:"total_imbalance_cost"`
	TotalKupstCost     float64 `json:"total_kupst_cost"`
	TotalCost          float64 `json:"total_cost"`

	// LongPeriods/ShortPeriods count periods where the party was net long /
	// net short of its commitment.
	LongPeriods  int `json:"long_periods"`
	ShortPeriods int `json:"short_periods"`

	// WorstContract is the single most expensive period.
	WorstContract string  `json:"worst_contract,omitempty"`
	WorstCost     float64 `json:"worst_cost"`

	AvgMCP float64 `json:"avg_mcp"`
	AvgSMP float64 `json:"avg_smp"`
}

// Summarize reduces a run result to its reporting summary.
func Summarize(res *Result) Summary {
	s := Summary{
		Periods:            len(res.Ledger),
		TotalImbalanceCost: res.TotalImbalanceCost,
		TotalKupstCost:     res.TotalKupstCost,
		TotalCost:          res.TotalCost,
	}
	if len(res.Ledger) == 0 {
		return s
	}

	var sumMCP, sumSMP float64
	for _, r := range res.Ledger {
		sumMCP += r.MCP
		sumSMP += r.SMP
		if r.ImbalanceQty > 0 {
			s.LongPeriods++
		} else if r.ImbalanceQty < 0 {
			s.ShortPeriods++
		}
		if s.WorstContract == "" || r.PeriodCost > s.WorstCost {
			s.WorstContract = r.Contract
			s.WorstCost = r.PeriodCost
		}
	}
	s.AvgMCP = sumMCP / float64(len(res.Ledger))
	s.AvgSMP = sumSMP / float64(len(res.Ledger))
	return s
}
