// Package finance implements the amortization math for a fixed-rate,
// fixed-term loan. Every function is total: malformed inputs are the
// caller's responsibility and nothing here panics or errors.
package finance

import "math"

// MonthlyPayment returns the level monthly payment that fully amortizes a
// fixed-rate loan.
//
//	payment = P * (r * (1+r)^n) / ((1+r)^n - 1)
//
// where r is the monthly rate (annual% / 100 / 12) and n the number of
// monthly payments. A zero rate degrades to straight-line principal/n and a
// zero term pays nothing.
func MonthlyPayment(principal, annualRatePct, termYears float64) float64 {
	months := termYears * 12
	if months == 0 {
		return 0
	}
	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		return principal / months
	}
	growth := math.Pow(1+monthlyRate, months)
	return principal * (monthlyRate * growth) / (growth - 1)
}

// RemainingBalance returns the principal still owed after monthsPaid level
// payments.
//
//	balance = P * ((1+r)^n - (1+r)^m) / ((1+r)^n - 1)
//
// At m=0 this is exactly P; at m=n it is exactly zero. The zero-rate case
// walks the straight line down and floors at zero.
func RemainingBalance(principal, annualRatePct, termYears, monthsPaid float64) float64 {
	months := termYears * 12
	if months == 0 {
		return 0
	}
	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		return math.Max(principal-(principal/months)*monthsPaid, 0)
	}
	growth := math.Pow(1+monthlyRate, months)
	paid := math.Pow(1+monthlyRate, monthsPaid)
	return principal * (growth - paid) / (growth - 1)
}
