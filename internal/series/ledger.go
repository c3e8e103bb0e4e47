package series

import "time"

// Period is one input row of a settlement series: the reference prices and
// the party's position for one delivery period.
type Period struct {
	Contract string  `json:"contract"`
	MCP      float64 `json:"mcp"`
	SMP      float64 `json:"smp"`
	Forecast float64 `json:"forecast"`
	Actual   float64 `json:"actual"`
}

// LedgerRow is one row of per-period output. This is the primary artifact
// for "what this period cost" in a settlement run.
type LedgerRow struct {
	Index int

	Contract string
	Delivery time.Time
	// Period is the regulation period the contract resolved to.
	Period string

	MCP float64
	SMP float64

	Forecast float64
	Actual   float64

	ImbalanceQty float64
	// AdjustedQty is the residual after the DSG tolerance band is absorbed.
	AdjustedQty   float64
	ImbalanceCost float64

	// Kupsm and KupstCost stay zero for consumer runs; see Result.Producer.
	Kupsm     float64
	KupstCost float64

	PeriodCost float64
	CumCost    float64
}

type Result struct {
	Ledger []LedgerRow
	// Producer records whether the KUPST columns are meaningful.
	Producer bool

	TotalImbalanceCost float64
	TotalKupstCost     float64
	TotalCost          float64
}
