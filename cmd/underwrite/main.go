package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"dealwise/pkg/core/analysis"
	"dealwise/pkg/core/ingest"
	"dealwise/pkg/core/pipeline"
	"dealwise/pkg/core/report"
	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/store"
	"dealwise/pkg/core/underwrite"
	"dealwise/pkg/core/validate"
)

func main() {
	godotenv.Load()

	dealPath := flag.String("deal", "", "Deal file (JSON or HJSON); empty runs the baseline profile")
	scenarioName := flag.String("scenario", "", "Preset scenario to apply on top of the deal")
	presetsPath := flag.String("presets", "configs/scenarios.yaml", "Scenario presets file")
	reportFormat := flag.String("report", "", "Write a report file: md or html")
	save := flag.Bool("save", false, "Upsert the deal inputs to the store (needs DATABASE_URL)")
	exportPath := flag.String("export", "", "Portfolio mode: analyze every listing in an export file")
	strict := flag.Bool("strict", false, "Portfolio mode: stop on validation errors")
	flag.Parse()

	presets, err := scenario.LoadPresets(*presetsPath)
	if err != nil {
		log.Fatalf("Error loading presets: %v", err)
	}

	if *exportPath != "" {
		runExport(*exportPath, presets, *scenarioName, *save, *strict)
		return
	}

	in := underwrite.Defaults()
	name := "baseline"
	notes := ""
	if *dealPath != "" {
		df, err := ingest.LoadDealFile(*dealPath)
		if err != nil {
			log.Fatalf("Error loading deal file: %v", err)
		}
		in = df.Resolve(in)
		name = df.Name
		notes = df.Notes
	}

	displayName := name
	if *scenarioName != "" {
		sc, ok := scenario.Find(presets, *scenarioName)
		if !ok {
			log.Fatalf("Error: unknown scenario %q (run with -presets to point at your file)", *scenarioName)
		}
		in = sc.Override.Apply(in)
		name = name + "-" + sc.Name
		displayName = fmt.Sprintf("%s [%s]", displayName, sc.Name)
	}

	for _, issue := range validate.CheckInputs(in) {
		fmt.Printf("[%s] %s: %s\n", strings.ToUpper(string(issue.Severity)), issue.Field, issue.Message)
	}

	a, err := analysis.NewEngine().Analyze(in)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	printReport(a, displayName)

	if *reportFormat != "" {
		writeReportFile(a, name, notes, *reportFormat)
	}

	if *save {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Error: -save needs a database: %v", err)
		}
		defer store.Close()
		rec := &store.DealRecord{Name: name, Inputs: in}
		if err := store.NewDealRepo().Save(ctx, rec); err != nil {
			log.Fatalf("Error saving deal: %v", err)
		}
		fmt.Printf("\n[Done] Saved deal %q (%s)\n", rec.Name, rec.ID)
	}
}

func runExport(path string, presets []scenario.Scenario, scenarioName string, save, strict bool) {
	logger := logrus.New()
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.WarnLevel
	}
	logger.SetLevel(logLevel)

	ctx := context.Background()
	var repo store.DealRepository
	if save {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Error: -save needs a database: %v", err)
		}
		defer store.Close()
		repo = store.NewDealRepo()
	}

	o := pipeline.NewOrchestrator(repo, logger, pipeline.Options{Save: save, Strict: strict})
	if scenarioName != "" {
		sc, ok := scenario.Find(presets, scenarioName)
		if !ok {
			log.Fatalf("Error: unknown scenario %q", scenarioName)
		}
		// Stress the whole export: every listing maps over the adjusted base.
		o.SetBaseInputs(sc.Override.Apply(underwrite.Defaults()))
	}
	outcomes, err := o.RunForExport(ctx, path)
	if err != nil {
		log.Fatalf("Portfolio run failed: %v", err)
	}

	fmt.Println("\n################################################################################")
	fmt.Println("                      DEALWISE - PORTFOLIO UNDERWRITING")
	fmt.Printf("                      Export: %s\n", path)
	fmt.Println("################################################################################")

	fmt.Printf("\n%-30s | %5s | %-9s | %14s\n", "Deal", "Score", "Verdict", "Cash Flow /mo")
	fmt.Println(strings.Repeat("-", 70))
	for _, out := range outcomes {
		if out.Err != nil {
			fmt.Printf("%-30s | skipped: %v\n", out.ListingID, out.Err)
			continue
		}
		v := out.Analysis.Verdict
		fmt.Printf("%-30s | %5.0f | %-9s | $ %12.2f\n",
			out.Name, v.Score, v.Label, out.Analysis.Metrics.CashFlowMonthly)
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("\n[Done] %d listings processed.\n", len(outcomes))
}

func printReport(a *analysis.DealAnalysis, name string) {
	in, m := a.Inputs, a.Metrics

	fmt.Println("\n################################################################################")
	fmt.Println("                      DEALWISE UNDERWRITING - ANALYST REPORT")
	fmt.Printf("                      Target: %s\n", name)
	fmt.Println("################################################################################")

	fmt.Println("\n[1] PURCHASE & FINANCING")
	fmt.Printf("Purchase Price:      $ %10.0f\n", in.PurchasePrice)
	fmt.Printf("Down Payment:        $ %10.0f  (%.0f%%)\n", m.DownPayment, in.DownPaymentPct)
	fmt.Printf("Loan Amount:         $ %10.0f  (%.2f%% / %.0f yr)\n", m.LoanAmount, in.InterestRate, in.TermYears)
	fmt.Printf("Monthly P&I:         $ %10.2f\n", m.MonthlyPI)
	fmt.Printf("Cash to Close:       $ %10.0f\n", m.CashNeeded)

	fmt.Println("\n[2] INCOME & EXPENSES (monthly)")
	fmt.Printf("Gross Rent:          $ %10.2f\n", m.GrossIncome)
	fmt.Printf("Vacancy Loss:        $ %10.2f\n", m.VacancyLoss)
	fmt.Printf("Effective Income:    $ %10.2f\n", m.EffectiveIncome)
	fmt.Printf("Operating Expenses:  $ %10.2f\n", m.OperatingExpenses)
	fmt.Printf("NOI:                 $ %10.2f\n", m.NOIMonthly)

	fmt.Println("\n[3] RETURNS")
	fmt.Printf("Cash Flow:           $ %10.2f /mo  ($ %.0f /yr)\n", m.CashFlowMonthly, m.AnnualCashFlow)
	fmt.Printf("Cap Rate:              %8.2f%%\n", m.CapRate*100)
	fmt.Printf("Cash-on-Cash:          %8.2f%%\n", m.CashOnCash*100)
	fmt.Printf("DSCR:                  %8.2f\n", m.DSCR)
	fmt.Printf("Break-even Occ.:       %8.1f%%\n", m.BreakEvenOccupancy*100)

	fmt.Println("\n[4] VERDICT")
	fmt.Printf("Score:  %.0f / 100  (%s)\n", a.Verdict.Score, a.Verdict.Label)

	fmt.Println("\n[5] 5-YEAR OUTLOOK")
	fmt.Printf("%4s | %10s | %10s | %11s | %11s\n", "Year", "NOI", "Cash Flow", "Value", "Equity")
	fmt.Println(strings.Repeat("-", 60))
	for _, p := range a.Projections {
		fmt.Printf("%4d | $ %8.0f | $ %8.0f | $ %9.0f | $ %9.0f\n",
			p.Year, p.NOI, p.CashFlow, p.PropertyValue, p.Equity)
	}

	fmt.Println("\n[6] SENSITIVITY (cash flow /mo)")
	header := fmt.Sprintf("%-16s", "Vacancy \\ Rent")
	for _, d := range a.Sensitivity.RentDeltas {
		header += fmt.Sprintf(" | %12s", rentLbl(d))
	}
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))
	for i, row := range a.Sensitivity.Rows {
		fmt.Printf("%-16s", vacLbl(a.Sensitivity.VacancyDeltas[i]))
		for _, c := range row {
			fmt.Printf(" | $ %10.2f", c.CashFlow)
		}
		fmt.Println()
	}

	fmt.Println("\n[7] NOTES")
	for _, f := range a.Narrative.RiskFlags {
		fmt.Printf("  [!] %s\n", f)
	}
	for _, s := range a.Narrative.Strengths {
		fmt.Printf("  [+] %s\n", s)
	}
	for _, r := range a.Narrative.Recommendations {
		fmt.Printf("  [>] %s\n", r)
	}

	fmt.Println("\n[Done] Analysis Complete.")
}

func writeReportFile(a *analysis.DealAnalysis, name, notes, format string) {
	builder := report.NewBuilder()

	var content, path string
	switch format {
	case "md":
		content = builder.Markdown(a, name, notes)
		path = name + ".md"
	case "html":
		html, err := builder.HTML(a, name, notes)
		if err != nil {
			log.Fatalf("Error rendering HTML: %v", err)
		}
		content = html
		path = name + ".html"
	default:
		log.Fatalf("Error: unknown report format %q (want md or html)", format)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}
	fmt.Printf("\n[Done] Report written to %s\n", path)
}

func rentLbl(delta float64) string {
	if delta == 0 {
		return "base"
	}
	return fmt.Sprintf("%+.0f%% rent", delta*100)
}

func vacLbl(delta float64) string {
	if delta == 0 {
		return "base"
	}
	return fmt.Sprintf("%+.0fpp vac", delta)
}
