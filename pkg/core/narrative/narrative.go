// Package narrative turns computed metrics into the three ordered note lists
// an analyst reads first: risk flags, strengths, and recommendations. Every
// rule is a fixed threshold against already-computed numbers; rules append
// their message in declaration order and never reorder.
package narrative

import "dealwise/pkg/core/underwrite"

// Narrative holds the three rule-list outputs. RiskFlags may be empty;
// Strengths and Recommendations always carry at least their fallback line.
type Narrative struct {
	RiskFlags       []string `json:"riskFlags"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// Fallback lines when no rule in the list fires.
const (
	noStrengths       = "No standout strengths at the current assumptions."
	noRecommendations = "Metrics are balanced. Stress-test rent and vacancy before committing."
)

// Build evaluates every rule list against one underwritten deal.
func Build(m underwrite.Metrics, in underwrite.Inputs) Narrative {
	return Narrative{
		RiskFlags:       riskFlags(m, in),
		Strengths:       strengths(m, in),
		Recommendations: recommendations(m, in),
	}
}

func riskFlags(m underwrite.Metrics, in underwrite.Inputs) []string {
	var flags []string
	if m.CashFlowMonthly < 0 {
		flags = append(flags, "Negative monthly cash flow: the property does not pay for itself.")
	}
	if m.DSCR > 0 && m.DSCR < in.DSCRTarget {
		flags = append(flags, "DSCR is below the lender target; financing may be hard to place.")
	}
	if m.CapRate > 0 && m.CapRate < 0.05 {
		flags = append(flags, "Cap rate under 5% is a thin operating yield for the price.")
	}
	if in.VacancyPct < 4 {
		flags = append(flags, "Vacancy assumption under 4% looks optimistic.")
	}
	if in.DownPaymentPct < 15 {
		flags = append(flags, "Down payment below 15% leaves little equity cushion.")
	}
	if m.OperatingExpenseRatio > 0.5 {
		flags = append(flags, "Operating expenses consume more than half of effective income.")
	}
	if m.DebtYield > 0 && m.DebtYield < 0.08 {
		flags = append(flags, "Debt yield under 8%: the loan is large relative to the NOI behind it.")
	}
	return flags
}

func strengths(m underwrite.Metrics, in underwrite.Inputs) []string {
	var notes []string
	if m.CashFlowMonthly > 250 {
		notes = append(notes, "Healthy monthly cash flow after all expenses and reserves.")
	}
	if m.CapRate >= 0.06 {
		notes = append(notes, "Cap rate at or above 6%.")
	}
	if m.CashOnCash >= 0.10 {
		notes = append(notes, "Cash-on-cash return of 10% or better.")
	}
	if m.DSCR >= in.DSCRTarget {
		notes = append(notes, "Debt coverage meets the lender target.")
	}
	if m.RentToPrice >= 0.01 {
		notes = append(notes, "Rent-to-price ratio clears the 1% screen.")
	}
	if m.OperatingExpenseRatio > 0 && m.OperatingExpenseRatio <= 0.45 {
		notes = append(notes, "Lean expense load for the income produced.")
	}
	if m.DebtYield >= 0.09 {
		notes = append(notes, "Debt yield of 9% or better gives the lender real margin.")
	}
	if len(notes) == 0 {
		notes = append(notes, noStrengths)
	}
	return notes
}

func recommendations(m underwrite.Metrics, in underwrite.Inputs) []string {
	var recs []string
	if m.CashFlowMonthly < 0 {
		recs = append(recs, "Negotiate the purchase price or trim the rehab scope to shrink the cash basis.")
	}
	if m.DSCR < in.DSCRTarget {
		recs = append(recs, "Raise income or cut operating expenses to lift DSCR toward the target.")
	}
	if m.CapRate < 0.05 {
		recs = append(recs, "Validate rent and price against comparables, or find expense reductions.")
	}
	if m.OperatingExpenseRatio > 0.5 {
		recs = append(recs, "Audit the expense stack: management, utilities, and contracted services first.")
	}
	if m.DebtYield > 0 && m.DebtYield < 0.08 {
		recs = append(recs, "Lower the offer price or raise NOI so the loan is better covered.")
	}
	if len(recs) == 0 {
		recs = append(recs, noRecommendations)
	}
	return recs
}
