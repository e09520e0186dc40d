// Package underwrite derives the point-in-time investment metrics for a
// rental acquisition from a single set of deal assumptions. The derivation
// is a pure function: same Inputs, same Metrics, no state in between.
package underwrite

// Inputs holds every assumption the underwriting engines consume.
// Percentage fields are plain numbers: 6.4 means 6.4%.
type Inputs struct {
	// Acquisition & financing
	PurchasePrice  float64 `json:"purchasePrice"`
	DownPaymentPct float64 `json:"downPaymentPct"`
	InterestRate   float64 `json:"interestRate"`
	TermYears      float64 `json:"termYears"`
	ClosingCostPct float64 `json:"closingCostPct"`
	LoanPointsPct  float64 `json:"loanPointsPct"`
	RehabBudget    float64 `json:"rehabBudget"`
	FinanceRehab   bool    `json:"financeRehab"`

	// Income
	RentMonthly        float64 `json:"rentMonthly"`
	OtherIncomeMonthly float64 `json:"otherIncomeMonthly"`
	VacancyPct         float64 `json:"vacancyPct"`

	// Expenses
	PropertyTaxRate          float64 `json:"propertyTaxRate"`
	InsuranceMonthly         float64 `json:"insuranceMonthly"`
	HOAMonthly               float64 `json:"hoaMonthly"`
	UtilitiesMonthly         float64 `json:"utilitiesMonthly"`
	MaintenancePct           float64 `json:"maintenancePct"`
	ManagementPct            float64 `json:"managementPct"`
	CapExPct                 float64 `json:"capexPct"`
	OtherExpenseMonthly      float64 `json:"otherExpenseMonthly"`
	MortgageInsuranceMonthly float64 `json:"mortgageInsuranceMonthly"`

	// Growth & targets
	AppreciationRate  float64 `json:"appreciationRate"`
	RentGrowthRate    float64 `json:"rentGrowthRate"`
	ExpenseGrowthRate float64 `json:"expenseGrowthRate"`
	DSCRTarget        float64 `json:"dscrTarget"`
}

// Defaults returns the documented baseline deal: a $485k single-family
// rental with 20% down at 6.4%, an unfinanced $15k rehab, $3,200 rent, and
// conventional reserve assumptions.
func Defaults() Inputs {
	return Inputs{
		PurchasePrice:  485000,
		DownPaymentPct: 20,
		InterestRate:   6.4,
		TermYears:      30,
		ClosingCostPct: 3,
		LoanPointsPct:  1,
		RehabBudget:    15000,
		FinanceRehab:   false,

		RentMonthly:        3200,
		OtherIncomeMonthly: 150,
		VacancyPct:         6,

		PropertyTaxRate:          0.95,
		InsuranceMonthly:         135,
		HOAMonthly:               90,
		UtilitiesMonthly:         0,
		MaintenancePct:           5,
		ManagementPct:            8,
		CapExPct:                 5,
		OtherExpenseMonthly:      60,
		MortgageInsuranceMonthly: 0,

		AppreciationRate:  3,
		RentGrowthRate:    3,
		ExpenseGrowthRate: 2.5,
		DSCRTarget:        1.2,
	}
}
