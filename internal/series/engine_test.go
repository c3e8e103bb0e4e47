package series

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"epias-settlement/internal/cost"
)

func samplePeriods() []Period {
	return []Period{
		{Contract: "PH25123122", MCP: 2000, SMP: 2500, Forecast: 100, Actual: 130},
		{Contract: "PH25123123", MCP: 2500, SMP: 2000, Forecast: 100, Actual: 80},
		{Contract: "PH26010100", MCP: 1800, SMP: 1800, Forecast: 100, Actual: 100},
	}
}

func TestRunProducer(t *testing.T) {
	engine := New()
	res, err := engine.Run(samplePeriods(), Party{Name: "wind farm", IsProducer: true, Source: "wind"})
	require.NoError(t, err)
	require.Len(t, res.Ledger, 3)
	require.True(t, res.Producer)

	// Rows must agree with the scalar engine.
	for i, row := range res.Ledger {
		p := samplePeriods()[i]
		scalar, err := cost.CalculateDiffCostsByContract(p.Contract, cost.SettlementInput{
			Forecast:   p.Forecast,
			Actual:     p.Actual,
			IsProducer: true,
			MCP:        p.MCP,
			SMP:        p.SMP,
			Source:     "wind",
		}, cost.SettlementParams{})
		require.NoError(t, err)
		require.InDelta(t, scalar.ImbalanceQty, row.ImbalanceQty, 1e-9)
		require.InDelta(t, scalar.ImbalanceCost, row.ImbalanceCost, 1e-9)
		require.NotNil(t, scalar.Producer)
		require.InDelta(t, scalar.Producer.KupstCost, row.KupstCost, 1e-9)
	}

	// The regulation regime flips at the boundary contract.
	require.Equal(t, "pre_2026", res.Ledger[0].Period)
	require.Equal(t, "pre_2026", res.Ledger[1].Period)
	require.Equal(t, "current", res.Ledger[2].Period)

	// Cumulative total matches the sum of period costs.
	var sum float64
	for _, row := range res.Ledger {
		sum += row.PeriodCost
	}
	require.InDelta(t, sum, res.TotalCost, 1e-9)
	require.InDelta(t, res.TotalImbalanceCost+res.TotalKupstCost, res.TotalCost, 1e-9)
	require.InDelta(t, res.Ledger[2].CumCost, res.TotalCost, 1e-9)
}

func TestRunConsumer(t *testing.T) {
	engine := New()
	res, err := engine.Run(samplePeriods(), Party{IsProducer: false})
	require.NoError(t, err)
	require.False(t, res.Producer)
	require.Zero(t, res.TotalKupstCost)
	for _, row := range res.Ledger {
		require.Zero(t, row.Kupsm)
		require.Zero(t, row.KupstCost)
	}
}

func TestRunToleranceKnob(t *testing.T) {
	party := Party{IsProducer: true, Source: "wind"}

	base, err := New().Run(samplePeriods(), party)
	require.NoError(t, err)
	// First period: long by 30, pre-2026 default band 0.10 * 130.
	require.InDelta(t, 17.0, base.Ledger[0].AdjustedQty, 1e-9)

	tol := 0.99
	engine := New()
	engine.Params.Amount.DSGTolerance = &tol
	tuned, err := engine.Run(samplePeriods(), party)
	require.NoError(t, err)
	require.Equal(t, 0.0, tuned.Ledger[0].AdjustedQty)
	require.NotEqual(t, base.Ledger[0].AdjustedQty, tuned.Ledger[0].AdjustedQty)

	// The band never touches the money columns.
	require.InDelta(t, base.TotalCost, tuned.TotalCost, 1e-9)
}

func TestRunFailsLoudly(t *testing.T) {
	engine := New()

	// A producer without a source must error, never settle to zero.
	_, err := engine.Run(samplePeriods(), Party{IsProducer: true})
	require.ErrorIs(t, err, cost.ErrMissingParameter)

	// A malformed contract aborts the run.
	periods := samplePeriods()
	periods[1].Contract = "bogus"
	_, err = engine.Run(periods, Party{IsProducer: false})
	require.Error(t, err)

	_, err = engine.Run(nil, Party{})
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	engine := New()
	res, err := engine.Run(samplePeriods(), Party{IsProducer: true, Source: "wind"})
	require.NoError(t, err)

	s := Summarize(res)
	require.Equal(t, 3, s.Periods)
	require.Equal(t, 1, s.LongPeriods)  // over-produced once
	require.Equal(t, 1, s.ShortPeriods) // under-produced once
	require.InDelta(t, res.TotalCost, s.TotalCost, 1e-9)
	require.NotEmpty(t, s.WorstContract)
	require.InDelta(t, (2000+2500+1800)/3.0, s.AvgMCP, 1e-9)
}

func TestWriteLedgerCSV(t *testing.T) {
	engine := New()
	res, err := engine.Run(samplePeriods(), Party{IsProducer: false})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteLedgerCSV(path, res))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 periods
	require.Equal(t, "contract", rows[0][1])
	require.Equal(t, "PH25123122", rows[1][1])

	// Consumer runs leave the KUPST columns empty, not zero.
	require.Equal(t, "adjusted_qty", rows[0][9])
	require.Equal(t, "", rows[1][11])
	require.Equal(t, "", rows[1][12])
}

func TestLoadPeriodsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.json")
	payload := `{
	  "party": {"name": "demo", "is_producer": true, "source": "wind"},
	  "data": [
	    {"contract": "PH25123122", "mcp": 2000, "smp": 2500, "forecast": 100, "actual": 130}
	  ]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	f, err := LoadPeriodsJSON(path)
	require.NoError(t, err)
	require.Equal(t, "demo", f.Party.Name)
	require.True(t, f.Party.IsProducer)
	require.Len(t, f.Data, 1)
	require.Equal(t, "PH25123122", f.Data[0].Contract)
	require.Equal(t, 130.0, f.Data[0].Actual)

	_, err = LoadPeriodsJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
