package main

import (
	"flag"
	"fmt"
	"time"

	"epias-settlement/internal/config"
	"epias-settlement/internal/contract"
	"epias-settlement/internal/cost"
	"epias-settlement/internal/series"
)

// Demo:
// - Decode a contract code and show its calendar facts
// - Compute unit imbalance prices/costs under both regimes
// - Run a small settlement series to show how the pieces fit together
func main() {
	dataPath := flag.String("data", "sample_periods.json", "Path to settlement periods JSON")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 12, "Number of periods to settle")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	// Part 1: contract algebra.
	code := "PH24072914"
	delivery, err := contract.ToTime(code)
	if err != nil {
		panic(err)
	}
	weekday, _ := contract.Weekday(code, contract.WeekdayTurkish)
	gateOpen, _ := contract.GateOpen(code, contract.DefaultGateOpenHour)
	gateClose, _ := contract.GateClose(code, contract.DefaultGateCloseLead)

	fmt.Printf("Contract %s delivers %s (%s)\n", code, delivery.Format(time.RFC3339), weekday)
	fmt.Printf("Gate opens %s, closes %s\n\n", gateOpen.Format(time.RFC3339), gateClose.Format(time.RFC3339))

	// Part 2: unit prices under both regimes for the same reference prices.
	mcp, smp := 2000.0, 2500.0
	for _, p := range []cost.RegulationPeriod{cost.Pre2026, cost.Current} {
		prices := cost.UnitImbalancePrices(mcp, smp, p, cost.ImbalanceParams{})
		costs := cost.UnitImbalanceCosts(mcp, smp, p, cost.ImbalanceParams{})
		fmt.Printf("%-9s mcp=%.0f smp=%.0f  pos=%8.2f neg=%8.2f  pos_cost=%8.2f neg_cost=%8.2f\n",
			p, mcp, smp, prices.Pos, prices.Neg, costs.Pos, costs.Neg)
	}
	fmt.Println()

	// Part 3: settlement series.
	f, err := series.LoadPeriodsJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	if len(f.Data) == 0 {
		panic("no periods in JSON")
	}

	party := f.Party
	engine := series.New()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		party = cfg.ToParty()
		engine.Params = cfg.ToSettlementParams()
	}

	periods := f.Data
	if *n < len(periods) {
		periods = periods[:*n]
	}

	result, err := engine.Run(periods, party)
	if err != nil {
		panic(err)
	}

	role := "consumer"
	if party.IsProducer {
		role = fmt.Sprintf("producer/%s", party.Source)
	}
	fmt.Printf("Settling %d periods for %s (%s)\n\n", len(periods), party.Name, role)

	for i := 0; i < min(12, len(result.Ledger)); i++ {
		r := result.Ledger[i]
		fmt.Printf(
			"%s [%s] mcp=%7.2f smp=%7.2f  qty=%7.2f  imb=%9.2f  kupst=%8.2f  cum=%10.2f\n",
			r.Contract,
			r.Period,
			r.MCP,
			r.SMP,
			r.ImbalanceQty,
			r.ImbalanceCost,
			r.KupstCost,
			r.CumCost,
		)
	}

	if *outCSV != "" {
		if err := series.WriteLedgerCSV(*outCSV, result); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Imbalance=%.2f TL  KUPST=%.2f TL  Total=%.2f TL\n",
		result.TotalImbalanceCost, result.TotalKupstCost, result.TotalCost)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
