package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"epias-settlement/internal/config"
	"epias-settlement/internal/contract"
	"epias-settlement/internal/cost"
	"epias-settlement/internal/series"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "settle":
		cmdSettle(os.Args[2:])
	case "contract":
		cmdContract(os.Args[2:])
	case "range":
		cmdRange(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli settle --data sample_periods.json --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli contract --code PH24072914")
	fmt.Println("  cli range --start 2024-07-01 --end 2024-07-02")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - settle outputs a per-contract settlement ledger CSV plus totals")
	fmt.Println("  - contract decodes one contract code (delivery, gate times, regime)")
	fmt.Println("  - range enumerates every hourly contract between two dates")
}

func cmdSettle(args []string) {
	fs := flag.NewFlagSet("settle", flag.ExitOnError)
	dataPath := fs.String("data", "sample_periods.json", "Path to settlement periods JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (overrides the party in the JSON)")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: limit to first N periods (0=all)")
	_ = fs.Parse(args)

	f, err := series.LoadPeriodsJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	periods := f.Data
	if *n > 0 && *n < len(periods) {
		periods = periods[:*n]
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

	res, err := engine.Run(periods, party)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := series.WriteLedgerCSV(*outPath, res); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	if res.Producer {
		fmt.Printf("Imbalance=%.2f TL  KUPST=%.2f TL  Total=%.2f TL\n",
			res.TotalImbalanceCost, res.TotalKupstCost, res.TotalCost)
	} else {
		fmt.Printf("Imbalance=%.2f TL\n", res.TotalImbalanceCost)
	}
}

func cmdContract(args []string) {
	fs := flag.NewFlagSet("contract", flag.ExitOnError)
	code := fs.String("code", "", "Contract code (PHyyMMddHH or PByyMMddHH-BB)")
	_ = fs.Parse(args)

	if *code == "" {
		fmt.Println("--code is required")
		os.Exit(2)
	}

	parsed, err := contract.Parse(*code)
	if err != nil {
		panic(err)
	}
	period, err := cost.PeriodByContract(*code)
	if err != nil {
		panic(err)
	}
	weekday, _ := contract.Weekday(*code, contract.WeekdayEnglish)
	weekdayTr, _ := contract.Weekday(*code, contract.WeekdayTurkish)
	gateOpen, _ := contract.GateOpen(*code, contract.DefaultGateOpenHour)
	gateClose, _ := contract.GateClose(*code, contract.DefaultGateCloseLead)
	seconds, _ := contract.SecondsToClose(*code, time.Time{}, contract.DefaultGateCloseLead)

	fmt.Printf("contract    %s\n", *code)
	if parsed.BlockHours > 0 {
		fmt.Printf("block       %d hours\n", parsed.BlockHours)
	}
	fmt.Printf("delivery    %s (%s/%s)\n", parsed.Time.Format(time.RFC3339), weekday, weekdayTr)
	fmt.Printf("gate open   %s\n", gateOpen.Format(time.RFC3339))
	fmt.Printf("gate close  %s\n", gateClose.Format(time.RFC3339))
	fmt.Printf("remaining   %s\n", contract.FormatRemaining(seconds, contract.DefaultRemainingFormat))
	fmt.Printf("regulation  %s\n", period)
}

func cmdRange(args []string) {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	start := fs.String("start", "", "Start date (YYYY-MM-DD, inclusive)")
	end := fs.String("end", "", "End date (YYYY-MM-DD, inclusive)")
	_ = fs.Parse(args)

	if *start == "" || *end == "" {
		fmt.Println("--start and --end are required")
		os.Exit(2)
	}

	contracts, err := contract.RangeDates(*start, *end)
	if err != nil {
		panic(err)
	}
	for _, c := range contracts {
		fmt.Println(c)
	}
	fmt.Printf("%d contracts\n", len(contracts))
}
