package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidations()

	settlementHandler := NewSettlementHandler()
	pricesHandler := NewPricesHandler()
	contractHandler := NewContractHandler()
	contractHandler.now = func() time.Time {
		return time.Date(2025, 7, 29, 10, 0, 0, 0, time.UTC)
	}

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/settlement", settlementHandler.RunSettlement)
	api.POST("/settlement/series", settlementHandler.RunSeries)
	api.GET("/prices/unit", pricesHandler.UnitPrices)
	api.GET("/tolerances", pricesHandler.Tolerance)
	api.GET("/contracts", contractHandler.Range)
	api.GET("/contracts/active", contractHandler.Active)
	api.GET("/contracts/:code", contractHandler.Decode)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func TestRunSettlementConsumer(t *testing.T) {
	router := newTestRouter()

	// Consumer drawing 20 MWh over forecast is net short: the deficit side of
	// the 2026 formula prices at neg_price = 2500*1.06, so the unit cost over
	// the day-ahead price is 650 TL/MWh.
	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH26021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 120,
		"is_producer": false
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "current", payload["period"])
	require.InDelta(t, 13000.0, payload["imbalance_cost"].(float64), 1e-6)

	// Producer-only keys must be absent for consumers, not zero.
	_, hasKupst := payload["kupst_cost"]
	require.False(t, hasKupst)
	_, hasTotal := payload["total_cost"]
	require.False(t, hasTotal)
	_, hasQty := payload["imbalance_qty"]
	require.False(t, hasQty)
	_, hasAdj := payload["adjusted_qty"]
	require.False(t, hasAdj)
}

func TestRunSettlementProducer(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH25021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 80,
		"is_producer": true,
		"source": "wind",
		"include_quantities": true
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pre_2026", payload["period"])
	require.Contains(t, payload, "kupst_cost")
	require.Contains(t, payload, "total_cost")
	require.Contains(t, payload, "kupsm")
	require.InDelta(t, -20.0, payload["imbalance_qty"].(float64), 1e-9)
	// Pre-2026 DSG band 0.10 of |actual| absorbs 8 MWh of the miss.
	require.InDelta(t, -12.0, payload["adjusted_qty"].(float64), 1e-9)
	// Wind tolerance pre-2026 is 0.17: the 20 MWh miss on a 100 MWh forecast
	// leaves 3 MWh of penalized deviation.
	require.InDelta(t, 3.0, payload["kupsm"].(float64), 1e-9)
}

func TestRunSettlementToleranceOverride(t *testing.T) {
	router := newTestRouter()

	// An explicit zero tolerance disables the band: the adjusted quantity
	// must equal the raw imbalance, not the default-band residual.
	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH26021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 80,
		"is_producer": false,
		"dsg_tolerance": 0,
		"include_quantities": true
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.InDelta(t, 20.0, payload["imbalance_qty"].(float64), 1e-9)
	require.InDelta(t, 20.0, payload["adjusted_qty"].(float64), 1e-9)

	// Default current band: 0.05 * 80 absorbed.
	w, payload = doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH26021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 80,
		"is_producer": false,
		"include_quantities": true
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.InDelta(t, 16.0, payload["adjusted_qty"].(float64), 1e-9)

	// An out-of-range multiplier is rejected, not ignored.
	w, payload = doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH26021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 80,
		"tolerance_multiplier": 1.5
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := payload["error"].(map[string]interface{})
	require.Equal(t, "INVALID_ARGUMENT", detail["code"])
}

func TestRunSettlementProducerMissingSource(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH26021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 80,
		"is_producer": true
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := payload["error"].(map[string]interface{})
	require.Equal(t, "MISSING_PARAMETER", detail["code"])
}

func TestRunSettlementInvalidContract(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "XX26021015",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 80
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, payload, "error")
}

func TestRunSettlementPeriodLiteralWins(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement", `{
		"contract": "PH26021015",
		"period": "pre_2026",
		"mcp": 2000, "smp": 2500,
		"forecast": 100, "actual": 100
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pre_2026", payload["period"])
}

func TestRunSeries(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement/series", `{
		"party": {"name": "wind farm", "is_producer": true, "source": "wind"},
		"periods": [
			{"contract": "PH25073112", "mcp": 2000, "smp": 2500, "forecast": 100, "actual": 80},
			{"contract": "PH26010100", "mcp": 2000, "smp": 2500, "forecast": 100, "actual": 120}
		],
		"options": {"include_ledger": true}
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "completed", payload["status"])

	ledger := payload["ledger"].([]interface{})
	require.Len(t, ledger, 2)
	first := ledger[0].(map[string]interface{})
	require.Equal(t, "PH25073112", first["contract"])
	require.Equal(t, "pre_2026", first["period"])
	second := ledger[1].(map[string]interface{})
	require.Equal(t, "current", second["period"])
}

func TestRunSeriesCSV(t *testing.T) {
	router := newTestRouter()

	body := `{
		"party": {"name": "wind farm", "is_producer": true, "source": "wind"},
		"periods": [
			{"contract": "PH25073112", "mcp": 2000, "smp": 2500, "forecast": 100, "actual": 80},
			{"contract": "PH26010100", "mcp": 2000, "smp": 2500, "forecast": 100, "actual": 120}
		],
		"options": {"format": "csv"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlement/series", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "ledger.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "index,contract,delivery"))
	require.Contains(t, lines[1], "PH25073112")
}

func TestRunSeriesRejectsEmptyPeriods(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/settlement/series", `{
		"party": {"name": "x"},
		"periods": []
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, payload, "error")
}

func TestUnitPrices(t *testing.T) {
	router := newTestRouter()

	// System surplus (mcp > smp): low margin on the long side, high on the
	// short side.
	w, payload := doJSON(t, router, http.MethodGet,
		"/api/v1/prices/unit?period=current&mcp=2500&smp=2000", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.InDelta(t, 2575.0, payload["neg_price"].(float64), 1e-9)
	require.InDelta(t, 1880.0, payload["pos_price"].(float64), 1e-9)
	require.InDelta(t, 75.0, payload["neg_cost"].(float64), 1e-9)
	_, hasKupst := payload["unit_kupst"]
	require.False(t, hasKupst)

	w, payload = doJSON(t, router, http.MethodGet,
		"/api/v1/prices/unit?period=current&mcp=2500&smp=2000&with_kupst=true&source=wind", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.InDelta(t, 125.0, payload["unit_kupst"].(float64), 1e-9)
}

func TestTolerance(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodGet,
		"/api/v1/tolerances?contract=PH25073112&source=wind", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.InDelta(t, 0.17, payload["tolerance"].(float64), 1e-9)
}

func TestDecodeContract(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/contracts/PH24072914", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2024-07-29T14:00:00+03:00", payload["delivery"])
	require.Equal(t, "Pzt", payload["weekday_tr"])
	require.Equal(t, "pre_2026", payload["regulation_period"])

	w, payload = doJSON(t, router, http.MethodGet, "/api/v1/contracts/nonsense", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, payload, "error")
}

func TestContractRange(t *testing.T) {
	router := newTestRouter()

	w, payload := doJSON(t, router, http.MethodGet,
		"/api/v1/contracts?start=2025-07-01&end=2025-07-02", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(48), payload["count"].(float64))
	contracts := payload["contracts"].([]interface{})
	require.Equal(t, "PH25070100", contracts[0])
	require.Equal(t, "PH25070223", contracts[47])
}
