package handlers

import (
	"net/http"
	"time"

	"epias-settlement/internal/api/models"
	"epias-settlement/internal/contract"
	"epias-settlement/internal/cost"

	"github.com/gin-gonic/gin"
)

// ContractHandler handles contract decoding and enumeration requests
type ContractHandler struct {
	gateOpenHour int
	closeLead    time.Duration
	// now is injectable for tests.
	now func() time.Time
}

// NewContractHandler creates a contract handler with the market defaults.
func NewContractHandler() *ContractHandler {
	return &ContractHandler{
		gateOpenHour: contract.DefaultGateOpenHour,
		closeLead:    contract.DefaultGateCloseLead,
		now:          time.Now,
	}
}

// Decode handles GET /api/v1/contracts/:code
func (h *ContractHandler) Decode(c *gin.Context) {
	code := c.Param("code")

	parsed, err := contract.Parse(code)
	if err != nil {
		writeError(c, err)
		return
	}

	hour, _ := contract.Hour(code)
	day, _ := contract.Day(code)
	weekdayNum, _ := contract.Weekday(code, contract.WeekdayNumeric)
	weekdayEn, _ := contract.Weekday(code, contract.WeekdayEnglish)
	weekdayTr, _ := contract.Weekday(code, contract.WeekdayTurkish)

	gateOpen, err := contract.GateOpen(code, h.gateOpenHour)
	if err != nil {
		writeError(c, err)
		return
	}
	gateClose, err := contract.GateClose(code, h.closeLead)
	if err != nil {
		writeError(c, err)
		return
	}
	seconds, err := contract.SecondsToClose(code, h.now(), h.closeLead)
	if err != nil {
		writeError(c, err)
		return
	}

	period, err := cost.PeriodByContract(code)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ContractResponse{
		Contract:   code,
		BlockHours: parsed.BlockHours,

		Delivery:  parsed.Time.Format(time.RFC3339),
		Timestamp: parsed.Time.Unix(),

		Hour:           hour,
		Day:            day,
		Weekday:        weekdayNum,
		WeekdayEnglish: weekdayEn,
		WeekdayTurkish: weekdayTr,

		GateOpen:       gateOpen.Format(time.RFC3339),
		GateClose:      gateClose.Format(time.RFC3339),
		SecondsToClose: seconds,
		Remaining:      contract.FormatRemaining(seconds, contract.DefaultRemainingFormat),

		RegulationPeriod: period.String(),
	})
}

// Range handles GET /api/v1/contracts
func (h *ContractHandler) Range(c *gin.Context) {
	var req models.ContractRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}

	contracts, err := contract.RangeDates(req.Start, req.End)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ContractListResponse{
		Contracts: contracts,
		Count:     len(contracts),
	})
}

// Active handles GET /api/v1/contracts/active
func (h *ContractHandler) Active(c *gin.Context) {
	contracts := contract.ActiveContracts(h.now())
	c.JSON(http.StatusOK, models.ContractListResponse{
		Contracts: contracts,
		Count:     len(contracts),
	})
}
