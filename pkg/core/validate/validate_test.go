package validate

import (
	"testing"

	"dealwise/pkg/core/underwrite"
)

func TestCheckInputsCleanBaseline(t *testing.T) {
	if issues := CheckInputs(underwrite.Defaults()); len(issues) != 0 {
		t.Errorf("baseline inputs should raise no issues, got %v", issues)
	}
}

func TestCheckInputsNegativePrimariesAreErrors(t *testing.T) {
	in := underwrite.Defaults()
	in.PurchasePrice = -485000
	in.RentMonthly = -100
	in.TermYears = -1

	issues := CheckInputs(in)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(issues), issues)
	}

	// Errors come first, in field order.
	wantFields := []string{"purchasePrice", "rentMonthly", "termYears"}
	for i, f := range wantFields {
		if issues[i].Field != f {
			t.Errorf("issues[%d].Field = %q, want %q", i, issues[i].Field, f)
		}
		if issues[i].Severity != SeverityError {
			t.Errorf("issues[%d].Severity = %q, want error", i, issues[i].Severity)
		}
	}
	if !HasErrors(issues) {
		t.Error("HasErrors should be true")
	}
}

func TestCheckInputsPercentDomainWarnings(t *testing.T) {
	in := underwrite.Defaults()
	in.DownPaymentPct = 120
	in.ManagementPct = -8

	issues := CheckInputs(in)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(issues), issues)
	}
	for _, is := range issues {
		if is.Severity != SeverityWarning {
			t.Errorf("%s: severity = %q, want warning", is.Field, is.Severity)
		}
	}
	if issues[0].Field != "downPaymentPct" || issues[1].Field != "managementPct" {
		t.Errorf("unexpected field order: %v", issues)
	}
	if HasErrors(issues) {
		t.Error("percent-domain issues are warnings, not errors")
	}
}

func TestCheckInputsMarketNormWarnings(t *testing.T) {
	in := underwrite.Defaults()
	in.VacancyPct = 100
	in.TermYears = 60
	in.InterestRate = 32

	issues := CheckInputs(in)

	// 100 sits on the closed [0,100] boundary, so the percent-domain rule
	// stays quiet and only the market-norm rules fire.
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(issues), issues)
	}
	wantFields := []string{"vacancyPct", "termYears", "interestRate"}
	for i, f := range wantFields {
		if issues[i].Field != f {
			t.Errorf("issues[%d].Field = %q, want %q", i, issues[i].Field, f)
		}
	}
}

func TestCheckInputsVacancyBeyondDomainStacksRules(t *testing.T) {
	in := underwrite.Defaults()
	in.VacancyPct = 150

	issues := CheckInputs(in)

	// 150 is outside [0,100] and at-or-above 100, so both rules report it.
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(issues), issues)
	}
	for _, is := range issues {
		if is.Field != "vacancyPct" {
			t.Errorf("unexpected field %q", is.Field)
		}
		if is.Value != 150 {
			t.Errorf("issue value = %v, want 150", is.Value)
		}
	}
}
