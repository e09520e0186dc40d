// Package sensitivity stress-tests a deal's monthly cash flow across a small
// grid of rent and vacancy perturbations. Only the income side and the
// income-linked reserves move; property tax, insurance, HOA, utilities, other
// expenses, and the debt service are reused unchanged from the base metrics.
package sensitivity

import (
	"math"

	"dealwise/pkg/core/underwrite"
)

// Grid axes. Vacancy deltas are percentage points added to the assumption;
// rent deltas are relative (-0.05 is a 5% rent cut).
var (
	VacancyDeltas = []float64{-2, 0, 2}
	RentDeltas    = []float64{-0.05, 0, 0.05}
)

// Cell is one rent/vacancy combination. RentMonthly and VacancyPct are the
// perturbed values the cell was computed with.
type Cell struct {
	RentDelta    float64 `json:"rentDelta"`
	VacancyDelta float64 `json:"vacancyDelta"`
	RentMonthly  float64 `json:"rentMonthly"`
	VacancyPct   float64 `json:"vacancyPct"`
	CashFlow     float64 `json:"cashFlow"`
	Tone         string  `json:"tone"`
}

// Grid is the full 3x3 sweep: one row per vacancy delta, one column per rent
// delta, both in axis order. The center cell reproduces the base cash flow
// bit for bit.
type Grid struct {
	VacancyDeltas []float64 `json:"vacancyDeltas"`
	RentDeltas    []float64 `json:"rentDeltas"`
	Rows          [][]Cell  `json:"rows"`
}

// Run sweeps the grid for one underwritten deal.
func Run(in underwrite.Inputs, m underwrite.Metrics) Grid {
	g := Grid{
		VacancyDeltas: VacancyDeltas,
		RentDeltas:    RentDeltas,
		Rows:          make([][]Cell, 0, len(VacancyDeltas)),
	}
	for _, vd := range VacancyDeltas {
		row := make([]Cell, 0, len(RentDeltas))
		for _, rd := range RentDeltas {
			row = append(row, cell(in, m, rd, vd))
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// cell re-derives income and the rent-linked reserves exactly the way the
// metrics engine does, so the unperturbed cell degrades to the base numbers.
func cell(in underwrite.Inputs, m underwrite.Metrics, rentDelta, vacancyDelta float64) Cell {
	rent := in.RentMonthly * (1 + rentDelta)
	vacancy := math.Max(in.VacancyPct+vacancyDelta, 0)

	grossIncome := rent + in.OtherIncomeMonthly
	vacancyLoss := grossIncome * vacancy / 100
	effectiveIncome := grossIncome - vacancyLoss

	maintenance := rent * in.MaintenancePct / 100
	management := grossIncome * in.ManagementPct / 100
	capex := rent * in.CapExPct / 100
	operatingExpenses := m.PropertyTaxMonthly + in.InsuranceMonthly + in.HOAMonthly +
		in.UtilitiesMonthly + maintenance + management + capex + in.OtherExpenseMonthly

	noi := effectiveIncome - operatingExpenses
	cashFlow := noi - m.DebtService

	return Cell{
		RentDelta:    rentDelta,
		VacancyDelta: vacancyDelta,
		RentMonthly:  rent,
		VacancyPct:   vacancy,
		CashFlow:     cashFlow,
		Tone:         tone(cashFlow),
	}
}

// tone buckets a cell for display: comfortably positive, break-even-ish, or
// under water.
func tone(cashFlow float64) string {
	switch {
	case cashFlow >= 250:
		return "positive"
	case cashFlow >= 0:
		return "neutral"
	default:
		return "negative"
	}
}
