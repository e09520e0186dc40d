// Package projection rolls an underwritten deal forward over future years.
// Income, expenses, and property value compound independently at their own
// growth rates; the loan payment is fixed-rate, so annual debt service stays
// flat while the balance amortizes down.
package projection

import (
	"math"

	"dealwise/pkg/core/finance"
	"dealwise/pkg/core/underwrite"
)

// DefaultYears are the horizon offsets the analyst report shows.
var DefaultYears = []int{1, 3, 5}

// YearProjection is the deal's expected position at one future year offset.
// Income, Expenses, NOI, CashFlow, and DebtService are annual dollars.
type YearProjection struct {
	Year          int     `json:"year"`
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	NOI           float64 `json:"noi"`
	CashFlow      float64 `json:"cashFlow"`
	PropertyValue float64 `json:"propertyValue"`
	LoanBalance   float64 `json:"loanBalance"`
	Equity        float64 `json:"equity"`
}

// Project compounds the base metrics out to each requested year offset.
// The sequence is ordered as given and recomputed fresh on every call:
//
//	income_y   = annualIncome   * (1+rentGrowth)^y
//	expenses_y = annualExpenses * (1+expenseGrowth)^y
//	value_y    = price          * (1+appreciation)^y
//
// Debt service does not grow; equity is value minus the amortized balance.
func Project(in underwrite.Inputs, m underwrite.Metrics, years []int) []YearProjection {
	price := math.Max(in.PurchasePrice, 0)

	out := make([]YearProjection, 0, len(years))
	for _, year := range years {
		y := float64(year)
		income := m.AnnualIncome * math.Pow(1+in.RentGrowthRate/100, y)
		expenses := m.AnnualExpenses * math.Pow(1+in.ExpenseGrowthRate/100, y)
		noi := income - expenses
		value := price * math.Pow(1+in.AppreciationRate/100, y)
		balance := finance.RemainingBalance(m.LoanAmount, in.InterestRate, in.TermYears, y*12)

		out = append(out, YearProjection{
			Year:          year,
			Income:        income,
			Expenses:      expenses,
			NOI:           noi,
			CashFlow:      noi - m.AnnualDebtService,
			PropertyValue: value,
			LoanBalance:   balance,
			Equity:        value - balance,
		})
	}
	return out
}
