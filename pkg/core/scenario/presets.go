package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// BuiltIn returns the presets compiled into the binary. "baseline" is the
// empty override; every other preset touches a small slice of the inputs so
// the rest keeps whatever the caller already has.
func BuiltIn() []Scenario {
	return []Scenario{
		{
			Name:    "baseline",
			Tagline: "The documented default assumptions, untouched.",
		},
		{
			Name:    "aggressive-growth",
			Tagline: "Hot market: faster appreciation and rent growth.",
			Override: Override{
				AppreciationRate:  floatPtr(5),
				RentGrowthRate:    floatPtr(5),
				ExpenseGrowthRate: floatPtr(3),
			},
		},
		{
			Name:    "high-vacancy-stress",
			Tagline: "Soft demand: vacancy doubled, rent growth stalls.",
			Override: Override{
				VacancyPct:     floatPtr(12),
				RentGrowthRate: floatPtr(1),
			},
		},
		{
			Name:    "rate-shock",
			Tagline: "Financing lands 150bps above the baseline quote.",
			Override: Override{
				InterestRate:  floatPtr(7.9),
				LoanPointsPct: floatPtr(2),
			},
		},
		{
			Name:    "all-cash",
			Tagline: "No mortgage: price paid outright, returns unlevered.",
			Override: Override{
				DownPaymentPct:           floatPtr(100),
				InterestRate:             floatPtr(0),
				LoanPointsPct:            floatPtr(0),
				MortgageInsuranceMonthly: floatPtr(0),
			},
		},
		{
			Name:    "value-add",
			Tagline: "Financed rehab that lifts rent after stabilization.",
			Override: Override{
				RehabBudget:    floatPtr(45000),
				FinanceRehab:   boolPtr(true),
				RentMonthly:    floatPtr(3650),
				MaintenancePct: floatPtr(6),
			},
		},
	}
}

// Find looks a scenario up by name, case-insensitively.
func Find(scenarios []Scenario, name string) (Scenario, bool) {
	for _, s := range scenarios {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Scenario{}, false
}

type presetFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadPresets reads scenario presets from a YAML file and merges them over
// the built-ins: file entries replace a built-in of the same name and are
// appended otherwise. A missing file is not an error; callers simply get
// the built-ins.
func LoadPresets(path string) ([]Scenario, error) {
	out := BuiltIn()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}

	for i, s := range file.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("presets %s: entry %d has no name", path, i)
		}
		replaced := false
		for j := range out {
			if strings.EqualFold(out[j].Name, s.Name) {
				out[j] = s
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, s)
		}
	}

	return out, nil
}
