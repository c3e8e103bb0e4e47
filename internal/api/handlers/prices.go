package handlers

import (
	"net/http"

	"epias-settlement/internal/api/models"
	"epias-settlement/internal/cost"

	"github.com/gin-gonic/gin"
)

// PricesHandler handles unit price/cost and tolerance lookups
type PricesHandler struct{}

// NewPricesHandler creates a new prices handler
func NewPricesHandler() *PricesHandler {
	return &PricesHandler{}
}

// UnitPrices handles GET /api/v1/prices/unit
func (h *PricesHandler) UnitPrices(c *gin.Context) {
	var req models.UnitPricesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}

	period, err := resolvePeriod(req.Period, req.Contract)
	if err != nil {
		writeError(c, err)
		return
	}

	bundle := cost.UnitPriceAndCosts(req.MCP, req.SMP, period, cost.ImbalanceParams{},
		req.WithKupst, cost.KupstParams{Source: req.Source})

	resp := gin.H{
		"period":    period.String(),
		"pos_price": bundle.PosPrice,
		"neg_price": bundle.NegPrice,
		"pos_cost":  bundle.PosCost,
		"neg_cost":  bundle.NegCost,
	}
	// Absent, not null, when KUPST was not requested.
	if bundle.UnitKupst != nil {
		resp["unit_kupst"] = *bundle.UnitKupst
	}
	c.JSON(http.StatusOK, resp)
}

// Tolerance handles GET /api/v1/tolerances
func (h *PricesHandler) Tolerance(c *gin.Context) {
	var req models.ToleranceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}

	period, err := resolvePeriod(req.Period, req.Contract)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToleranceResponse{
		Source:    req.Source,
		Period:    period.String(),
		Tolerance: cost.KupstTolerance(req.Source, period),
	})
}
