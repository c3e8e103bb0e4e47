package models

// SettlementRequest represents the request body for settling a single period.
// The regulation period is resolved from the contract code unless an explicit
// period literal is supplied.
type SettlementRequest struct {
	Contract string `json:"contract" binding:"omitempty,contract"`
	Period   string `json:"period,omitempty"` // "pre_2026", "current" or "26_01"

	MCP float64 `json:"mcp" binding:"min=0"`
	SMP float64 `json:"smp" binding:"min=0"`

	Forecast   float64 `json:"forecast"`
	Actual     float64 `json:"actual"`
	IsProducer bool    `json:"is_producer"`
	Source     string  `json:"source,omitempty"`

	MaintenancePenalty bool `json:"maintenance_penalty,omitempty"`
	// DSGTolerance and ToleranceMultiplier tune the tolerance band behind the
	// reported adjusted quantity. Omitted means the regime defaults; an
	// explicit zero tolerance disables the band.
	DSGTolerance        *float64 `json:"dsg_tolerance,omitempty"`
	ToleranceMultiplier *float64 `json:"tolerance_multiplier,omitempty"`
	// IncludeQuantities adds imbalance_qty and adjusted_qty (and kupsm for
	// producers) to the response for auditability.
	IncludeQuantities bool `json:"include_quantities,omitempty"`
}

// SeriesRequest represents a request to settle a series of periods.
type SeriesRequest struct {
	Party   PartyRequest    `json:"party" binding:"required"`
	Periods []PeriodRequest `json:"periods" binding:"required,min=1,dive"`
	Options SeriesOptions   `json:"options,omitempty"`
}

// PartyRequest identifies the settled party.
type PartyRequest struct {
	Name                string   `json:"name,omitempty"`
	IsProducer          bool     `json:"is_producer"`
	Source              string   `json:"source,omitempty"`
	MaintenancePenalty  bool     `json:"maintenance_penalty,omitempty"`
	DSGTolerance        *float64 `json:"dsg_tolerance,omitempty"`
	ToleranceMultiplier *float64 `json:"tolerance_multiplier,omitempty"`
}

// PeriodRequest is one period of a series request.
type PeriodRequest struct {
	Contract string  `json:"contract" binding:"required,contract"`
	MCP      float64 `json:"mcp" binding:"min=0"`
	SMP      float64 `json:"smp" binding:"min=0"`
	Forecast float64 `json:"forecast"`
	Actual   float64 `json:"actual"`
}

// SeriesOptions contains optional series parameters.
type SeriesOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
	// Format selects the response encoding: "json" (default) or "csv"
	// (the ledger as a CSV attachment).
	Format string `json:"format,omitempty" binding:"omitempty,oneof=json csv"`
}

// UnitPricesRequest represents the query for unit prices/costs.
type UnitPricesRequest struct {
	Contract string  `form:"contract" binding:"omitempty,contract"`
	Period   string  `form:"period"`
	MCP      float64 `form:"mcp" binding:"min=0"`
	SMP      float64 `form:"smp" binding:"min=0"`

	WithKupst bool   `form:"with_kupst"`
	Source    string `form:"source"`
}

// ToleranceRequest represents the query for a KUPST tolerance lookup.
type ToleranceRequest struct {
	Contract string `form:"contract" binding:"omitempty,contract"`
	Period   string `form:"period"`
	Source   string `form:"source" binding:"required"`
}

// ContractRangeRequest represents the query for contract range enumeration.
type ContractRangeRequest struct {
	Start string `form:"start" binding:"required"` // YYYY-MM-DD
	End   string `form:"end" binding:"required"`   // YYYY-MM-DD
}
