package projection

import (
	"math"
	"testing"

	"dealwise/pkg/core/underwrite"
)

func TestProjectBaseline(t *testing.T) {
	// Baseline annual figures (from the metrics worked example):
	// annualIncome      = 3149 * 12      = 37,788
	// annualExpenses    = 1256.9583 * 12 = 15,083.50
	// annualDebtService ~= 2426.96 * 12  = 29,123.55
	//
	// Year 1 at 3% rent growth / 2.5% expense growth / 3% appreciation:
	// income   = 37788 * 1.03        = 38,921.64
	// expenses = 15083.50 * 1.025    = 15,460.59
	// noi      = 23,461.05
	// cashFlow = 23461.05 - 29123.55 = -5,662.50
	// value    = 485000 * 1.03       = 499,550
	in := underwrite.Defaults()
	m := underwrite.Compute(in)
	rows := Project(in, m, DefaultYears)

	if len(rows) != 3 {
		t.Fatalf("expected 3 projection rows, got %d", len(rows))
	}
	for i, want := range []int{1, 3, 5} {
		if rows[i].Year != want {
			t.Errorf("row %d: expected year %d, got %d", i, want, rows[i].Year)
		}
	}

	y1 := rows[0]
	if math.Abs(y1.Income-38921.64) > 0.01 {
		t.Errorf("year 1 income: expected ~38921.64, got %f", y1.Income)
	}
	if math.Abs(y1.Expenses-15460.5875) > 0.01 {
		t.Errorf("year 1 expenses: expected ~15460.59, got %f", y1.Expenses)
	}
	if math.Abs(y1.NOI-23461.0525) > 0.01 {
		t.Errorf("year 1 noi: expected ~23461.05, got %f", y1.NOI)
	}
	if math.Abs(y1.CashFlow-(-5662.50)) > 25 {
		t.Errorf("year 1 cash flow: expected ~-5662.50, got %f", y1.CashFlow)
	}
	if math.Abs(y1.PropertyValue-499550) > 0.01 {
		t.Errorf("year 1 value: expected 499550, got %f", y1.PropertyValue)
	}

	// Year 5: income = 37788*1.03^5 = 43,806.65; value = 485000*1.03^5 = 562,247.93.
	y5 := rows[2]
	if math.Abs(y5.Income-43806.65) > 0.01 {
		t.Errorf("year 5 income: expected ~43806.65, got %f", y5.Income)
	}
	if math.Abs(y5.PropertyValue-562247.93) > 0.01 {
		t.Errorf("year 5 value: expected ~562247.93, got %f", y5.PropertyValue)
	}
}

func TestProjectBalanceAmortizes(t *testing.T) {
	in := underwrite.Defaults()
	m := underwrite.Compute(in)
	rows := Project(in, m, DefaultYears)

	// Early in a 30-year note the balance declines slowly but strictly.
	prev := m.LoanAmount
	for _, row := range rows {
		if row.LoanBalance >= prev {
			t.Errorf("year %d: balance %f did not decline from %f", row.Year, row.LoanBalance, prev)
		}
		if row.LoanBalance < m.LoanAmount*0.90 {
			t.Errorf("year %d: balance %f fell implausibly fast", row.Year, row.LoanBalance)
		}
		prev = row.LoanBalance
	}

	// Equity compounds from both ends: value up, balance down.
	if !(rows[0].Equity < rows[1].Equity && rows[1].Equity < rows[2].Equity) {
		t.Errorf("equity should grow year over year, got %f / %f / %f",
			rows[0].Equity, rows[1].Equity, rows[2].Equity)
	}
}

func TestProjectDebtServiceHeldFixed(t *testing.T) {
	// NOI grows with rents, but cash flow must move one-for-one with it:
	// the spread cashFlow-noi is the constant annual debt service.
	in := underwrite.Defaults()
	m := underwrite.Compute(in)
	rows := Project(in, m, DefaultYears)

	for _, row := range rows {
		spread := row.NOI - row.CashFlow
		if math.Abs(spread-m.AnnualDebtService) > 1e-9 {
			t.Errorf("year %d: debt service drifted, expected %f, got %f",
				row.Year, m.AnnualDebtService, spread)
		}
	}
}

func TestProjectZeroGrowth(t *testing.T) {
	in := underwrite.Defaults()
	in.RentGrowthRate = 0
	in.ExpenseGrowthRate = 0
	in.AppreciationRate = 0
	m := underwrite.Compute(in)
	rows := Project(in, m, DefaultYears)

	for _, row := range rows {
		if math.Abs(row.Income-m.AnnualIncome) > 1e-9 {
			t.Errorf("year %d: income should not move at 0%% growth, got %f", row.Year, row.Income)
		}
		if math.Abs(row.Expenses-m.AnnualExpenses) > 1e-9 {
			t.Errorf("year %d: expenses should not move at 0%% growth, got %f", row.Year, row.Expenses)
		}
		if row.PropertyValue != 485000 {
			t.Errorf("year %d: value should stay at price, got %f", row.Year, row.PropertyValue)
		}
	}

	// Equity still rises because amortization alone pays the loan down.
	if !(rows[0].Equity < rows[2].Equity) {
		t.Errorf("equity should rise on amortization alone, got %f then %f", rows[0].Equity, rows[2].Equity)
	}
}

func TestProjectCustomYears(t *testing.T) {
	in := underwrite.Defaults()
	m := underwrite.Compute(in)

	rows := Project(in, m, []int{2, 10})
	if len(rows) != 2 || rows[0].Year != 2 || rows[1].Year != 10 {
		t.Fatalf("expected rows for years 2 and 10, got %+v", rows)
	}
	if rows := Project(in, m, nil); len(rows) != 0 {
		t.Errorf("expected no rows for empty year list, got %d", len(rows))
	}
}
