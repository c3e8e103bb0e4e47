package series

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLedger(f, res)
}

// WriteLedger streams the ledger CSV to w.
func WriteLedger(out io.Writer, res *Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"index",
		"contract",
		"delivery",
		"regulation_period",
		"mcp",
		"smp",
		"forecast",
		"actual",
		"imbalance_qty",
		"adjusted_qty",
		"imbalance_cost",
		"kupsm",
		"kupst_cost",
		"period_cost",
		"cum_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range res.Ledger {
		row := []string{
			strconv.Itoa(r.Index),
			r.Contract,
			fmtTime(r.Delivery),
			r.Period,
			fmtFloat(r.MCP),
			fmtFloat(r.SMP),
			fmtFloat(r.Forecast),
			fmtFloat(r.Actual),
			fmtFloat(r.ImbalanceQty),
			fmtFloat(r.AdjustedQty),
			fmtFloat(r.ImbalanceCost),
			"",
			"",
			fmtFloat(r.PeriodCost),
			fmtFloat(r.CumCost),
		}
		// KUPST columns carry values only for producer runs; for consumers
		// they stay empty rather than zero.
		if res.Producer {
			row[11] = fmtFloat(r.Kupsm)
			row[12] = fmtFloat(r.KupstCost)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
