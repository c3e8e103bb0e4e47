package handlers

import (
	"fmt"
	"net/http"
	"time"

	"epias-settlement/internal/api/models"
	"epias-settlement/internal/cost"
	"epias-settlement/internal/series"

	"github.com/gin-gonic/gin"
)

// SettlementHandler handles settlement cost requests
type SettlementHandler struct{}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler() *SettlementHandler {
	return &SettlementHandler{}
}

// resolvePeriod picks the regulation period from an explicit literal or from
// the contract code; the literal wins when both are present.
func resolvePeriod(periodLiteral, contractCode string) (cost.RegulationPeriod, error) {
	if periodLiteral != "" {
		return cost.ParsePeriod(periodLiteral)
	}
	if contractCode != "" {
		return cost.PeriodByContract(contractCode)
	}
	return 0, fmt.Errorf("%w: either period or contract is required", cost.ErrMissingParameter)
}

// RunSettlement handles POST /api/v1/settlement
func (h *SettlementHandler) RunSettlement(c *gin.Context) {
	var req models.SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	period, err := resolvePeriod(req.Period, req.Contract)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := cost.CalculateDiffCosts(cost.SettlementInput{
		Forecast:   req.Forecast,
		Actual:     req.Actual,
		IsProducer: req.IsProducer,
		MCP:        req.MCP,
		SMP:        req.SMP,
		Source:     req.Source,
		Period:     period,
	}, cost.SettlementParams{
		Kupst: cost.KupstParams{
			MaintenancePenalty: req.MaintenancePenalty,
			Source:             req.Source,
		},
		Amount: cost.AmountParams{
			DSGTolerance:        req.DSGTolerance,
			ToleranceMultiplier: req.ToleranceMultiplier,
		},
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewSettlementResponse(req.Contract, period, res, req.IncludeQuantities))
}

// RunSeries handles POST /api/v1/settlement/series
func (h *SettlementHandler) RunSeries(c *gin.Context) {
	var req models.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	periods := make([]series.Period, 0, len(req.Periods))
	for _, p := range req.Periods {
		periods = append(periods, series.Period{
			Contract: p.Contract,
			MCP:      p.MCP,
			SMP:      p.SMP,
			Forecast: p.Forecast,
			Actual:   p.Actual,
		})
	}

	engine := series.New()
	engine.Params.Kupst.MaintenancePenalty = req.Party.MaintenancePenalty
	engine.Params.Amount.DSGTolerance = req.Party.DSGTolerance
	engine.Params.Amount.ToleranceMultiplier = req.Party.ToleranceMultiplier
	res, err := engine.Run(periods, series.Party{
		Name:       req.Party.Name,
		IsProducer: req.Party.IsProducer,
		Source:     req.Party.Source,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Options.Format == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="ledger.csv"`)
		c.Status(http.StatusOK)
		if err := series.WriteLedger(c.Writer, res); err != nil {
			_ = c.Error(err)
		}
		return
	}

	resp := models.SeriesResponse{
		Status:  "completed",
		Summary: series.Summarize(res),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = toLedgerRows(res)
	}
	c.JSON(http.StatusOK, resp)
}

func toLedgerRows(res *series.Result) []models.SeriesLedgerRow {
	rows := make([]models.SeriesLedgerRow, 0, len(res.Ledger))
	for _, r := range res.Ledger {
		row := models.SeriesLedgerRow{
			Index:         r.Index,
			Contract:      r.Contract,
			Delivery:      r.Delivery.Format(time.RFC3339),
			Period:        r.Period,
			MCP:           r.MCP,
			SMP:           r.SMP,
			Forecast:      r.Forecast,
			Actual:        r.Actual,
			ImbalanceQty:  r.ImbalanceQty,
			AdjustedQty:   r.AdjustedQty,
			ImbalanceCost: r.ImbalanceCost,
			PeriodCost:    r.PeriodCost,
			CumCost:       r.CumCost,
		}
		if res.Producer {
			kupsm, kupst := r.Kupsm, r.KupstCost
			row.Kupsm = &kupsm
			row.KupstCost = &kupst
		}
		rows = append(rows, row)
	}
	return rows
}
