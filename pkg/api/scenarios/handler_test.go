package scenarios

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dealwise/pkg/core/scenario"
)

func TestHandleListPresets(t *testing.T) {
	h := NewHandler(scenario.BuiltIn())
	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var summaries []Summary
	if err := json.NewDecoder(rec.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 6 {
		t.Fatalf("expected 6 built-in presets, got %d", len(summaries))
	}

	byName := map[string]Summary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}
	if _, ok := byName["baseline"]; !ok {
		t.Error("baseline preset missing")
	}
	if len(byName["baseline"].Fields) != 0 {
		t.Errorf("baseline overrides nothing, got fields %v", byName["baseline"].Fields)
	}
	rs := byName["rate-shock"]
	if len(rs.Fields) != 2 {
		t.Errorf("rate-shock fields = %v", rs.Fields)
	}
	if rs.Tagline == "" {
		t.Error("rate-shock should carry a tagline")
	}
}

func TestHandleApplyMergesBaseThenScenario(t *testing.T) {
	h := NewHandler(scenario.BuiltIn())
	body := `{"base": {"purchasePrice": 600000, "interestRate": 5.0}, "scenario": "rate-shock"}`
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/apply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleApply(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ApplyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Scenario != "rate-shock" {
		t.Errorf("scenario = %q", resp.Scenario)
	}
	// The base override survives where the scenario is silent, and the
	// scenario wins where both speak.
	if resp.Inputs.PurchasePrice != 600000 {
		t.Errorf("purchasePrice = %v, want 600000 from base", resp.Inputs.PurchasePrice)
	}
	if resp.Inputs.InterestRate != 7.9 {
		t.Errorf("interestRate = %v, want 7.9 from scenario", resp.Inputs.InterestRate)
	}
	if resp.Inputs.RentMonthly != 3200 {
		t.Errorf("rentMonthly = %v, want baseline 3200", resp.Inputs.RentMonthly)
	}
}

func TestHandleApplyUnknownScenario(t *testing.T) {
	h := NewHandler(scenario.BuiltIn())
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/apply", strings.NewReader(`{"scenario": "moonshot"}`))
	rec := httptest.NewRecorder()
	h.HandleApply(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleApplyMissingName(t *testing.T) {
	h := NewHandler(scenario.BuiltIn())
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/apply", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.HandleApply(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
