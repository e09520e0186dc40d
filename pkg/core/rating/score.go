// Package rating maps an underwritten deal to a composite 0-100 verdict.
package rating

import "dealwise/pkg/core/underwrite"

// Verdict is the composite judgement on a deal. Tone is a fixed display
// color per label and carries no additional meaning.
type Verdict struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
	Tone  string  `json:"tone"`
}

// Label thresholds, checked top-down.
const (
	premiumFloor   = 80
	strongFloor    = 65
	watchlistFloor = 50
)

// Rate scores a deal. Cap rate and cash-on-cash each carry 25 points
// against 8% and 12% benchmarks (uncapped per-component, so one great
// number can cover a weak one), DSCR earns up to 25 across the 1.0-1.5
// band, positive monthly cash flow adds a flat 15, and 20%+ down earns 10
// instead of 5. The total is clamped to [0,100].
func Rate(m underwrite.Metrics, in underwrite.Inputs) Verdict {
	score := (m.CapRate/0.08)*25 +
		(m.CashOnCash/0.12)*25 +
		clamp((m.DSCR-1)/0.5, 0, 1)*25
	if m.CashFlowMonthly >= 0 {
		score += 15
	}
	if in.DownPaymentPct >= 20 {
		score += 10
	} else {
		score += 5
	}
	score = clamp(score, 0, 100)

	v := Verdict{Score: score}
	switch {
	case score >= premiumFloor:
		v.Label, v.Tone = "Premium", "emerald"
	case score >= strongFloor:
		v.Label, v.Tone = "Strong", "green"
	case score >= watchlistFloor:
		v.Label, v.Tone = "Watchlist", "amber"
	default:
		v.Label, v.Tone = "At Risk", "red"
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
