package models

import (
	"epias-settlement/internal/cost"
	"epias-settlement/internal/series"
)

// SettlementResponse is the flat cost bundle for one settled period.
// Producer-only keys (kupsm, kupst_cost, total_cost) are omitted, not zeroed,
// for consumers; downstream summation relies on key presence.
type SettlementResponse struct {
	Contract string `json:"contract,omitempty"`
	Period   string `json:"period"`

	ImbalanceQty  *float64 `json:"imbalance_qty,omitempty"`
	AdjustedQty   *float64 `json:"adjusted_qty,omitempty"`
	ImbalanceCost float64  `json:"imbalance_cost"`

	Kupsm     *float64 `json:"kupsm,omitempty"`
	KupstCost *float64 `json:"kupst_cost,omitempty"`
	TotalCost *float64 `json:"total_cost,omitempty"`
}

// NewSettlementResponse flattens engine output into the response shape.
func NewSettlementResponse(contractCode string, p cost.RegulationPeriod, c cost.SettlementCosts, includeQuantities bool) SettlementResponse {
	resp := SettlementResponse{
		Contract:      contractCode,
		Period:        p.String(),
		ImbalanceCost: c.ImbalanceCost,
	}
	if includeQuantities {
		qty := c.ImbalanceQty
		adj := c.AdjustedQty
		resp.ImbalanceQty = &qty
		resp.AdjustedQty = &adj
	}
	if c.Producer != nil {
		kupst := c.Producer.KupstCost
		total := c.Producer.TotalCost
		resp.KupstCost = &kupst
		resp.TotalCost = &total
		if includeQuantities {
			kupsm := c.Producer.Kupsm
			resp.Kupsm = &kupsm
		}
	}
	return resp
}

// SeriesResponse represents the response from a series settlement.
type SeriesResponse struct {
	Status  string            `json:"status"`
	Summary series.Summary    `json:"summary"`
	Ledger  []SeriesLedgerRow `json:"ledger,omitempty"`
}

// SeriesLedgerRow is one period of the series response ledger.
type SeriesLedgerRow struct {
	Index    int    `json:"index"`
	Contract string `json:"contract"`
	Delivery string `json:"delivery"`
	Period   string `json:"period"`

	MCP float64 `json:"mcp"`
	SMP float64 `json:"smp"`

	Forecast float64 `json:"forecast"`
	Actual   float64 `json:"actual"`

	ImbalanceQty  float64 `json:"imbalance_qty"`
	AdjustedQty   float64 `json:"adjusted_qty"`
	ImbalanceCost float64 `json:"imbalance_cost"`

	Kupsm     *float64 `json:"kupsm,omitempty"`
	KupstCost *float64 `json:"kupst_cost,omitempty"`

	PeriodCost float64 `json:"period_cost"`
	CumCost    float64 `json:"cum_cost"`
}

// ContractResponse is the decoded view of one contract code.
type ContractResponse struct {
	Contract   string `json:"contract"`
	BlockHours int    `json:"block_hours,omitempty"`

	Delivery  string `json:"delivery"`
	Timestamp int64  `json:"timestamp"`

	Hour           string `json:"hour"`
	Day            string `json:"day"`
	Weekday        string `json:"weekday"`
	WeekdayEnglish string `json:"weekday_en"`
	WeekdayTurkish string `json:"weekday_tr"`

	GateOpen       string `json:"gate_open"`
	GateClose      string `json:"gate_close"`
	SecondsToClose int64  `json:"seconds_to_close"`
	Remaining      string `json:"remaining"`

	RegulationPeriod string `json:"regulation_period"`
}

// ContractListResponse wraps an enumerated contract list.
type ContractListResponse struct {
	Contracts []string `json:"contracts"`
	Count     int      `json:"count"`
}

// ToleranceResponse is a KUPST tolerance lookup result.
type ToleranceResponse struct {
	Source    string  `json:"source"`
	Period    string  `json:"period"`
	Tolerance float64 `json:"tolerance"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
