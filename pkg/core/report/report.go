// Package report renders a DealAnalysis into an analyst-style document.
// The engines emit plain numbers; every display decision (currency commas,
// percent precision, the N/A sentinels) lives here.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dealwise/pkg/core/analysis"
	"dealwise/pkg/core/utils"
)

// Builder renders deal reports. The zero value is not usable; construct
// with NewBuilder.
type Builder struct {
	printer *message.Printer
}

// NewBuilder creates a report builder with en-US number formatting.
func NewBuilder() *Builder {
	return &Builder{printer: message.NewPrinter(language.English)}
}

// Markdown renders the full report. notes is optional deal-file prose; it
// is cleaned of outer code fences and lands at the top of the NOTES
// section.
func (b *Builder) Markdown(a *analysis.DealAnalysis, name, notes string) string {
	var sb strings.Builder
	in := a.Inputs
	m := a.Metrics

	fmt.Fprintf(&sb, "# Deal Report: %s\n\n", name)
	fmt.Fprintf(&sb, "_Analyzed %s_\n\n", a.AnalyzedAt.Format("2006-01-02 15:04 MST"))

	sb.WriteString("## [1] PURCHASE & FINANCING\n\n")
	fmt.Fprintf(&sb, "- **Purchase Price:** %s\n", b.money(in.PurchasePrice))
	fmt.Fprintf(&sb, "- **Down Payment:** %s (%s)\n", b.money(m.DownPayment), plainPct(in.DownPaymentPct))
	fmt.Fprintf(&sb, "- **Loan Amount:** %s at %s over %.0f years\n",
		b.money(m.LoanAmount), plainPct(in.InterestRate), in.TermYears)
	fmt.Fprintf(&sb, "- **Monthly P&I:** %s\n", b.money(m.MonthlyPI))
	fmt.Fprintf(&sb, "- **Closing Costs:** %s, **Points:** %s\n", b.money(m.ClosingCosts), b.money(m.PointsCost))
	rehab := b.money(in.RehabBudget)
	if in.FinanceRehab {
		rehab += " (financed)"
	}
	fmt.Fprintf(&sb, "- **Rehab Budget:** %s\n", rehab)
	fmt.Fprintf(&sb, "- **Cash to Close:** %s\n\n", b.money(m.CashNeeded))

	sb.WriteString("## [2] INCOME & EXPENSES\n\n")
	sb.WriteString("Monthly figures.\n\n")
	fmt.Fprintf(&sb, "- **Gross Income:** %s\n", b.money(m.GrossIncome))
	fmt.Fprintf(&sb, "- **Vacancy Loss:** %s (%s)\n", b.money(m.VacancyLoss), plainPct(in.VacancyPct))
	fmt.Fprintf(&sb, "- **Effective Income:** %s\n", b.money(m.EffectiveIncome))
	fmt.Fprintf(&sb, "- **Property Tax:** %s\n", b.money(m.PropertyTaxMonthly))
	fmt.Fprintf(&sb, "- **Insurance:** %s, **HOA:** %s, **Utilities:** %s\n",
		b.money(in.InsuranceMonthly), b.money(in.HOAMonthly), b.money(in.UtilitiesMonthly))
	fmt.Fprintf(&sb, "- **Maintenance:** %s, **Management:** %s, **CapEx Reserve:** %s\n",
		b.money(m.Maintenance), b.money(m.Management), b.money(m.CapEx))
	fmt.Fprintf(&sb, "- **Other Expenses:** %s\n", b.money(in.OtherExpenseMonthly))
	fmt.Fprintf(&sb, "- **Total Operating Expenses:** %s\n", b.money(m.OperatingExpenses))
	fmt.Fprintf(&sb, "- **NOI:** %s\n\n", b.money(m.NOIMonthly))

	sb.WriteString("## [3] RETURNS\n\n")
	fmt.Fprintf(&sb, "- **Cash Flow:** %s/month (%s/year)\n", b.money(m.CashFlowMonthly), b.money(m.AnnualCashFlow))
	fmt.Fprintf(&sb, "- **Cap Rate:** %s\n", ratioPct(m.CapRate))
	fmt.Fprintf(&sb, "- **Cash-on-Cash:** %s\n", ratioPct(m.CashOnCash))
	fmt.Fprintf(&sb, "- **DSCR:** %.2f (target %.2f)\n", m.DSCR, in.DSCRTarget)
	fmt.Fprintf(&sb, "- **Debt Yield:** %s\n", ratioPct(m.DebtYield))
	fmt.Fprintf(&sb, "- **Break-even Occupancy:** %s\n", ratioPct(m.BreakEvenOccupancy))
	fmt.Fprintf(&sb, "- **Operating Expense Ratio:** %s\n", ratioPct(m.OperatingExpenseRatio))
	fmt.Fprintf(&sb, "- **Rent-to-Price:** %s\n", ratioPct(m.RentToPrice))
	fmt.Fprintf(&sb, "- **GRM:** %s\n", naFloat(m.GRM, "%.1f"))
	fmt.Fprintf(&sb, "- **LTV:** %s\n", ratioPct(m.LTV))
	fmt.Fprintf(&sb, "- **Total Interest over Term:** %s\n", b.money(m.TotalInterest))
	fmt.Fprintf(&sb, "- **Payback:** %s\n\n", naFloat(m.PaybackYears, "%.1f years"))

	sb.WriteString("## [4] VERDICT\n\n")
	fmt.Fprintf(&sb, "**Score %.0f/100 (%s)**\n\n", a.Verdict.Score, a.Verdict.Label)

	sb.WriteString("## [5] 5-YEAR OUTLOOK\n\n")
	sb.WriteString("| Year | Income | Expenses | NOI | Cash Flow | Value | Loan Balance | Equity |\n")
	sb.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, p := range a.Projections {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			p.Year, b.money(p.Income), b.money(p.Expenses), b.money(p.NOI),
			b.money(p.CashFlow), b.money(p.PropertyValue), b.money(p.LoanBalance), b.money(p.Equity))
	}
	sb.WriteString("\n")

	sb.WriteString("## [6] SENSITIVITY\n\n")
	sb.WriteString("Monthly cash flow under rent and vacancy moves.\n\n")
	sb.WriteString("| Vacancy \\ Rent |")
	for _, rd := range a.Sensitivity.RentDeltas {
		fmt.Fprintf(&sb, " %s |", rentLabel(rd))
	}
	sb.WriteString("\n| --- ")
	for range a.Sensitivity.RentDeltas {
		sb.WriteString("| --- ")
	}
	sb.WriteString("|\n")
	for i, row := range a.Sensitivity.Rows {
		fmt.Fprintf(&sb, "| %s |", vacancyLabel(a.Sensitivity.VacancyDeltas[i]))
		for _, cell := range row {
			fmt.Fprintf(&sb, " %s |", b.money(cell.CashFlow))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## [7] NOTES\n\n")
	if cleaned := utils.CleanMarkdown(notes); cleaned != "" {
		sb.WriteString(cleaned)
		sb.WriteString("\n\n")
	}
	sb.WriteString("**Risk flags:**\n\n")
	writeList(&sb, a.Narrative.RiskFlags, "None.")
	sb.WriteString("**Strengths:**\n\n")
	writeList(&sb, a.Narrative.Strengths, "None.")
	sb.WriteString("**Recommendations:**\n\n")
	writeList(&sb, a.Narrative.Recommendations, "None.")

	return sb.String()
}

// HTML renders the markdown report and converts it with goldmark.
func (b *Builder) HTML(a *analysis.DealAnalysis, name, notes string) (string, error) {
	html, err := utils.RenderHTML(b.Markdown(a, name, notes))
	if err != nil {
		return "", fmt.Errorf("report html: %w", err)
	}
	return html, nil
}

func writeList(sb *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		sb.WriteString(empty + "\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

// money renders dollars with comma grouping, sign out front.
func (b *Builder) money(v float64) string {
	if v < 0 {
		return b.printer.Sprintf("-$%.2f", -v)
	}
	return b.printer.Sprintf("$%.2f", v)
}

// ratioPct renders a fraction (0.0468 means 4.68%).
func ratioPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// plainPct renders a plain-number percent (6.4 means 6.4%).
func plainPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// naFloat renders an optional metric, N/A when absent.
func naFloat(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

func rentLabel(delta float64) string {
	if delta == 0 {
		return "base"
	}
	return fmt.Sprintf("%+.0f%% rent", delta*100)
}

func vacancyLabel(delta float64) string {
	if delta == 0 {
		return "base"
	}
	return fmt.Sprintf("%+.0fpp vacancy", delta)
}
