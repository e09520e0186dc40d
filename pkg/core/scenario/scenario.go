// Package scenario layers named, partial overrides on top of a base set of
// deal assumptions. Applying a scenario never mutates the record it is given:
// Apply copies the base and writes only the fields the override sets.
package scenario

import (
	"dealwise/pkg/core/underwrite"
)

// Override is a partial underwrite.Inputs. Nil fields keep the base value;
// set fields replace it. Pointers keep zero distinguishable from absent, so
// an all-cash preset can legitimately set interestRate to 0.
type Override struct {
	// Acquisition & financing
	PurchasePrice  *float64 `json:"purchasePrice,omitempty" yaml:"purchasePrice,omitempty"`
	DownPaymentPct *float64 `json:"downPaymentPct,omitempty" yaml:"downPaymentPct,omitempty"`
	InterestRate   *float64 `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	TermYears      *float64 `json:"termYears,omitempty" yaml:"termYears,omitempty"`
	ClosingCostPct *float64 `json:"closingCostPct,omitempty" yaml:"closingCostPct,omitempty"`
	LoanPointsPct  *float64 `json:"loanPointsPct,omitempty" yaml:"loanPointsPct,omitempty"`
	RehabBudget    *float64 `json:"rehabBudget,omitempty" yaml:"rehabBudget,omitempty"`
	FinanceRehab   *bool    `json:"financeRehab,omitempty" yaml:"financeRehab,omitempty"`

	// Income
	RentMonthly        *float64 `json:"rentMonthly,omitempty" yaml:"rentMonthly,omitempty"`
	OtherIncomeMonthly *float64 `json:"otherIncomeMonthly,omitempty" yaml:"otherIncomeMonthly,omitempty"`
	VacancyPct         *float64 `json:"vacancyPct,omitempty" yaml:"vacancyPct,omitempty"`

	// Expenses
	PropertyTaxRate          *float64 `json:"propertyTaxRate,omitempty" yaml:"propertyTaxRate,omitempty"`
	InsuranceMonthly         *float64 `json:"insuranceMonthly,omitempty" yaml:"insuranceMonthly,omitempty"`
	HOAMonthly               *float64 `json:"hoaMonthly,omitempty" yaml:"hoaMonthly,omitempty"`
	UtilitiesMonthly         *float64 `json:"utilitiesMonthly,omitempty" yaml:"utilitiesMonthly,omitempty"`
	MaintenancePct           *float64 `json:"maintenancePct,omitempty" yaml:"maintenancePct,omitempty"`
	ManagementPct            *float64 `json:"managementPct,omitempty" yaml:"managementPct,omitempty"`
	CapExPct                 *float64 `json:"capexPct,omitempty" yaml:"capexPct,omitempty"`
	OtherExpenseMonthly      *float64 `json:"otherExpenseMonthly,omitempty" yaml:"otherExpenseMonthly,omitempty"`
	MortgageInsuranceMonthly *float64 `json:"mortgageInsuranceMonthly,omitempty" yaml:"mortgageInsuranceMonthly,omitempty"`

	// Growth & targets
	AppreciationRate  *float64 `json:"appreciationRate,omitempty" yaml:"appreciationRate,omitempty"`
	RentGrowthRate    *float64 `json:"rentGrowthRate,omitempty" yaml:"rentGrowthRate,omitempty"`
	ExpenseGrowthRate *float64 `json:"expenseGrowthRate,omitempty" yaml:"expenseGrowthRate,omitempty"`
	DSCRTarget        *float64 `json:"dscrTarget,omitempty" yaml:"dscrTarget,omitempty"`
}

// Scenario pairs an override with the name and one-line pitch shown to users.
type Scenario struct {
	Name     string   `json:"name" yaml:"name"`
	Tagline  string   `json:"tagline" yaml:"tagline"`
	Override Override `json:"override" yaml:"override"`
}

// Apply merges the override over base, field by field, and returns the
// result. base itself is untouched; unset fields pass through unchanged.
func (o Override) Apply(base underwrite.Inputs) underwrite.Inputs {
	out := base

	if o.PurchasePrice != nil {
		out.PurchasePrice = *o.PurchasePrice
	}
	if o.DownPaymentPct != nil {
		out.DownPaymentPct = *o.DownPaymentPct
	}
	if o.InterestRate != nil {
		out.InterestRate = *o.InterestRate
	}
	if o.TermYears != nil {
		out.TermYears = *o.TermYears
	}
	if o.ClosingCostPct != nil {
		out.ClosingCostPct = *o.ClosingCostPct
	}
	if o.LoanPointsPct != nil {
		out.LoanPointsPct = *o.LoanPointsPct
	}
	if o.RehabBudget != nil {
		out.RehabBudget = *o.RehabBudget
	}
	if o.FinanceRehab != nil {
		out.FinanceRehab = *o.FinanceRehab
	}

	if o.RentMonthly != nil {
		out.RentMonthly = *o.RentMonthly
	}
	if o.OtherIncomeMonthly != nil {
		out.OtherIncomeMonthly = *o.OtherIncomeMonthly
	}
	if o.VacancyPct != nil {
		out.VacancyPct = *o.VacancyPct
	}

	if o.PropertyTaxRate != nil {
		out.PropertyTaxRate = *o.PropertyTaxRate
	}
	if o.InsuranceMonthly != nil {
		out.InsuranceMonthly = *o.InsuranceMonthly
	}
	if o.HOAMonthly != nil {
		out.HOAMonthly = *o.HOAMonthly
	}
	if o.UtilitiesMonthly != nil {
		out.UtilitiesMonthly = *o.UtilitiesMonthly
	}
	if o.MaintenancePct != nil {
		out.MaintenancePct = *o.MaintenancePct
	}
	if o.ManagementPct != nil {
		out.ManagementPct = *o.ManagementPct
	}
	if o.CapExPct != nil {
		out.CapExPct = *o.CapExPct
	}
	if o.OtherExpenseMonthly != nil {
		out.OtherExpenseMonthly = *o.OtherExpenseMonthly
	}
	if o.MortgageInsuranceMonthly != nil {
		out.MortgageInsuranceMonthly = *o.MortgageInsuranceMonthly
	}

	if o.AppreciationRate != nil {
		out.AppreciationRate = *o.AppreciationRate
	}
	if o.RentGrowthRate != nil {
		out.RentGrowthRate = *o.RentGrowthRate
	}
	if o.ExpenseGrowthRate != nil {
		out.ExpenseGrowthRate = *o.ExpenseGrowthRate
	}
	if o.DSCRTarget != nil {
		out.DSCRTarget = *o.DSCRTarget
	}

	return out
}

// Fields reports the wire names of the fields the override sets, in the
// order they appear on the Inputs record.
func (o Override) Fields() []string {
	var set []string

	add := func(cond bool, name string) {
		if cond {
			set = append(set, name)
		}
	}

	add(o.PurchasePrice != nil, "purchasePrice")
	add(o.DownPaymentPct != nil, "downPaymentPct")
	add(o.InterestRate != nil, "interestRate")
	add(o.TermYears != nil, "termYears")
	add(o.ClosingCostPct != nil, "closingCostPct")
	add(o.LoanPointsPct != nil, "loanPointsPct")
	add(o.RehabBudget != nil, "rehabBudget")
	add(o.FinanceRehab != nil, "financeRehab")
	add(o.RentMonthly != nil, "rentMonthly")
	add(o.OtherIncomeMonthly != nil, "otherIncomeMonthly")
	add(o.VacancyPct != nil, "vacancyPct")
	add(o.PropertyTaxRate != nil, "propertyTaxRate")
	add(o.InsuranceMonthly != nil, "insuranceMonthly")
	add(o.HOAMonthly != nil, "hoaMonthly")
	add(o.UtilitiesMonthly != nil, "utilitiesMonthly")
	add(o.MaintenancePct != nil, "maintenancePct")
	add(o.ManagementPct != nil, "managementPct")
	add(o.CapExPct != nil, "capexPct")
	add(o.OtherExpenseMonthly != nil, "otherExpenseMonthly")
	add(o.MortgageInsuranceMonthly != nil, "mortgageInsuranceMonthly")
	add(o.AppreciationRate != nil, "appreciationRate")
	add(o.RentGrowthRate != nil, "rentGrowthRate")
	add(o.ExpenseGrowthRate != nil, "expenseGrowthRate")
	add(o.DSCRTarget != nil, "dscrTarget")

	return set
}

// IsEmpty reports whether the override sets no fields at all.
func (o Override) IsEmpty() bool {
	return len(o.Fields()) == 0
}
