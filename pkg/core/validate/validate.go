// Package validate screens deal assumptions for values that are out of
// domain or far outside market norms. The checks are advisory: the engines
// compute whatever they are given, and callers decide what to do with the
// issues. These functions can be called from tests, API handlers, or
// pipeline code before an underwriting pass.
package validate

import (
	"fmt"

	"dealwise/pkg/core/underwrite"
)

// Severity grades an issue. An error means the number is unusable in
// practice (a negative price cannot be underwritten meaningfully); a warning
// means the math still works but the assumption deserves a second look.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue describes one suspect input value.
type Issue struct {
	Field    string   `json:"field"`
	Value    float64  `json:"value"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// HasErrors reports whether any issue in the list is an error.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckInputs runs every rule against the record and returns the issues in
// a fixed order: hard errors on the primary quantities first, then the
// percent-domain warnings, then the market-norm warnings. An empty result
// means nothing looked off.
func CheckInputs(in underwrite.Inputs) []Issue {
	var issues []Issue

	if in.PurchasePrice < 0 {
		issues = append(issues, Issue{
			Field:    "purchasePrice",
			Value:    in.PurchasePrice,
			Severity: SeverityError,
			Message:  "purchase price is negative",
		})
	}
	if in.RentMonthly < 0 {
		issues = append(issues, Issue{
			Field:    "rentMonthly",
			Value:    in.RentMonthly,
			Severity: SeverityError,
			Message:  "monthly rent is negative",
		})
	}
	if in.TermYears < 0 {
		issues = append(issues, Issue{
			Field:    "termYears",
			Value:    in.TermYears,
			Severity: SeverityError,
			Message:  "loan term is negative",
		})
	}

	// Percent fields live in [0,100]. Values outside still compute, they
	// just rarely mean what the author intended.
	pctFields := []struct {
		name  string
		value float64
	}{
		{"downPaymentPct", in.DownPaymentPct},
		{"vacancyPct", in.VacancyPct},
		{"closingCostPct", in.ClosingCostPct},
		{"loanPointsPct", in.LoanPointsPct},
		{"maintenancePct", in.MaintenancePct},
		{"managementPct", in.ManagementPct},
		{"capexPct", in.CapExPct},
	}
	for _, f := range pctFields {
		if f.value < 0 || f.value > 100 {
			issues = append(issues, Issue{
				Field:    f.name,
				Value:    f.value,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s is outside the 0-100 percent range", f.name),
			})
		}
	}

	if in.VacancyPct >= 100 {
		issues = append(issues, Issue{
			Field:    "vacancyPct",
			Value:    in.VacancyPct,
			Severity: SeverityWarning,
			Message:  "vacancy at or above 100% leaves no rental income",
		})
	}
	if in.TermYears > 50 {
		issues = append(issues, Issue{
			Field:    "termYears",
			Value:    in.TermYears,
			Severity: SeverityWarning,
			Message:  "loan terms beyond 50 years are not written for residential deals",
		})
	}
	if in.InterestRate > 25 {
		issues = append(issues, Issue{
			Field:    "interestRate",
			Value:    in.InterestRate,
			Severity: SeverityWarning,
			Message:  "interest rate above 25% looks like a typo",
		})
	}

	return issues
}
