package underwrite

import (
	"math"

	"dealwise/pkg/core/finance"
)

// Metrics is the full derived record for one set of assumptions. Monetary
// fields are monthly dollars unless the name says otherwise; ratio fields
// are fractions (a CapRate of 0.0468 is 4.68%).
type Metrics struct {
	// Financing
	DownPayment  float64 `json:"downPayment"`
	LoanAmount   float64 `json:"loanAmount"`
	MonthlyPI    float64 `json:"monthlyPI"`
	ClosingCosts float64 `json:"closingCosts"`
	PointsCost   float64 `json:"pointsCost"`
	CashNeeded   float64 `json:"cashNeeded"`

	// Monthly operations
	GrossIncome        float64 `json:"grossIncome"`
	VacancyLoss        float64 `json:"vacancyLoss"`
	EffectiveIncome    float64 `json:"effectiveIncome"`
	PropertyTaxMonthly float64 `json:"propertyTaxMonthly"`
	Maintenance        float64 `json:"maintenance"`
	Management         float64 `json:"management"`
	CapEx              float64 `json:"capex"`
	OperatingExpenses  float64 `json:"operatingExpenses"`
	DebtService        float64 `json:"debtService"`
	NOIMonthly         float64 `json:"noiMonthly"`
	CashFlowMonthly    float64 `json:"cashFlowMonthly"`

	// Ratios
	CapRate               float64  `json:"capRate"`
	CashOnCash            float64  `json:"cashOnCash"`
	DSCR                  float64  `json:"dscr"`
	BreakEvenOccupancy    float64  `json:"breakEvenOccupancy"`
	RentToPrice           float64  `json:"rentToPrice"`
	GRM                   *float64 `json:"grm"` // nil when there is no rent to divide by
	LTV                   float64  `json:"ltv"`
	TotalInterest         float64  `json:"totalInterest"`
	OperatingExpenseRatio float64  `json:"operatingExpenseRatio"`
	DebtYield             float64  `json:"debtYield"`

	// Annualized
	AnnualIncome      float64  `json:"annualIncome"`
	AnnualExpenses    float64  `json:"annualExpenses"`
	AnnualNOI         float64  `json:"annualNOI"`
	AnnualCashFlow    float64  `json:"annualCashFlow"`
	AnnualDebtService float64  `json:"annualDebtService"`
	PaybackYears      *float64 `json:"paybackYears"` // nil when cash flow never recoups the cash in
}

// Compute derives the full metrics record from one set of assumptions.
// The order matters: financing feeds cash-at-close, income and expenses
// feed NOI, and NOI feeds every return ratio. Ratios are guarded so a
// non-positive denominator yields 0 instead of Inf; the two "not
// applicable" cases (GRM, payback) stay nil rather than faking a number.
func Compute(in Inputs) Metrics {
	var m Metrics

	// 1. Financing
	price := math.Max(in.PurchasePrice, 0)
	m.DownPayment = price * in.DownPaymentPct / 100
	loanBase := math.Max(price-m.DownPayment, 0)
	rehabFinanced := 0.0
	if in.FinanceRehab {
		rehabFinanced = in.RehabBudget
	}
	m.LoanAmount = loanBase + rehabFinanced
	m.MonthlyPI = finance.MonthlyPayment(m.LoanAmount, in.InterestRate, in.TermYears)

	// 2. Cash to close
	m.ClosingCosts = price * in.ClosingCostPct / 100
	m.PointsCost = m.LoanAmount * in.LoanPointsPct / 100
	m.CashNeeded = m.DownPayment + m.ClosingCosts + m.PointsCost
	if !in.FinanceRehab {
		m.CashNeeded += in.RehabBudget
	}

	// 3. Income
	m.PropertyTaxMonthly = price * in.PropertyTaxRate / 100 / 12
	m.GrossIncome = in.RentMonthly + in.OtherIncomeMonthly
	m.VacancyLoss = m.GrossIncome * in.VacancyPct / 100
	m.EffectiveIncome = m.GrossIncome - m.VacancyLoss

	// 4. Operating expenses
	// Maintenance and capex reserves are sized off rent; management is
	// quoted off gross collected income.
	m.Maintenance = in.RentMonthly * in.MaintenancePct / 100
	m.Management = m.GrossIncome * in.ManagementPct / 100
	m.CapEx = in.RentMonthly * in.CapExPct / 100
	m.OperatingExpenses = m.PropertyTaxMonthly + in.InsuranceMonthly + in.HOAMonthly +
		in.UtilitiesMonthly + m.Maintenance + m.Management + m.CapEx + in.OtherExpenseMonthly

	// 5. Debt service & cash flow
	m.DebtService = m.MonthlyPI + in.MortgageInsuranceMonthly
	m.NOIMonthly = m.EffectiveIncome - m.OperatingExpenses
	m.CashFlowMonthly = m.NOIMonthly - m.DebtService

	// 6. Ratios
	m.CapRate = safeDiv(m.NOIMonthly*12, price)
	m.CashOnCash = safeDiv(m.CashFlowMonthly*12, m.CashNeeded)
	m.DSCR = safeDiv(m.NOIMonthly, m.DebtService)
	m.BreakEvenOccupancy = safeDiv(m.OperatingExpenses+m.DebtService, m.GrossIncome)
	m.RentToPrice = safeDiv(in.RentMonthly*12, price)
	if in.RentMonthly > 0 {
		grm := price / (in.RentMonthly * 12)
		m.GRM = &grm
	}
	m.LTV = safeDiv(m.LoanAmount, price)
	m.TotalInterest = m.MonthlyPI*in.TermYears*12 - m.LoanAmount
	m.OperatingExpenseRatio = safeDiv(m.OperatingExpenses, m.EffectiveIncome)
	m.DebtYield = safeDiv(m.NOIMonthly*12, m.LoanAmount)

	// 7. Annualized
	m.AnnualIncome = m.EffectiveIncome * 12
	m.AnnualExpenses = m.OperatingExpenses * 12
	m.AnnualNOI = m.NOIMonthly * 12
	m.AnnualCashFlow = m.CashFlowMonthly * 12
	m.AnnualDebtService = m.DebtService * 12
	if m.AnnualCashFlow > 0 {
		payback := m.CashNeeded / m.AnnualCashFlow
		m.PaybackYears = &payback
	}

	return m
}

// safeDiv guards every ratio: a denominator that is zero or negative
// (floored quantities can only hit zero, but raw inputs can go negative)
// yields 0 rather than a non-finite value.
func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
