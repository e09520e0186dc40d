package underwrite

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"dealwise/pkg/core/scenario"
)

func testHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(scenario.BuiltIn(), log)
}

func post(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/underwrite", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleUnderwrite(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) UnderwriteResponse {
	t.Helper()
	var resp UnderwriteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHandleUnderwriteBaseline(t *testing.T) {
	rec := post(t, testHandler(), `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode(t, rec)
	if resp.Analysis == nil {
		t.Fatal("missing analysis")
	}
	if resp.Analysis.Verdict.Label != "At Risk" {
		t.Errorf("verdict = %q, want At Risk", resp.Analysis.Verdict.Label)
	}
	// Baseline cash flow is about -534.92/mo.
	if math.Abs(resp.Analysis.Metrics.CashFlowMonthly-(-534.92)) > 0.5 {
		t.Errorf("cashFlowMonthly = %v", resp.Analysis.Metrics.CashFlowMonthly)
	}
	if len(resp.Issues) != 0 {
		t.Errorf("baseline should be clean, got issues %v", resp.Issues)
	}
}

func TestHandleUnderwritePartialInputs(t *testing.T) {
	rec := post(t, testHandler(), `{"inputs": {"rentMonthly": 6000}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Analysis.Inputs.RentMonthly != 6000 {
		t.Errorf("rent override lost: %v", resp.Analysis.Inputs.RentMonthly)
	}
	// Other fields keep the baseline.
	if resp.Analysis.Inputs.PurchasePrice != 485000 {
		t.Errorf("purchasePrice = %v, want baseline 485000", resp.Analysis.Inputs.PurchasePrice)
	}
	if resp.Analysis.Verdict.Label != "Premium" {
		t.Errorf("verdict = %q, want Premium at 6000 rent", resp.Analysis.Verdict.Label)
	}
}

func TestHandleUnderwriteScenarioAppliesOnTop(t *testing.T) {
	rec := post(t, testHandler(), `{"inputs": {"purchasePrice": 600000}, "scenario": "rate-shock"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Analysis.Inputs.PurchasePrice != 600000 {
		t.Errorf("purchasePrice = %v, want caller value kept", resp.Analysis.Inputs.PurchasePrice)
	}
	if resp.Analysis.Inputs.InterestRate != 7.9 {
		t.Errorf("interestRate = %v, want 7.9 from rate-shock", resp.Analysis.Inputs.InterestRate)
	}
}

func TestHandleUnderwriteUnknownScenario(t *testing.T) {
	rec := post(t, testHandler(), `{"scenario": "moonshot"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleUnderwriteInvalidBody(t *testing.T) {
	rec := post(t, testHandler(), `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUnderwriteReportsIssuesButStillComputes(t *testing.T) {
	rec := post(t, testHandler(), `{"inputs": {"rentMonthly": -50}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decode(t, rec)
	if len(resp.Issues) == 0 {
		t.Error("expected a validation issue for negative rent")
	}
	if resp.Analysis == nil {
		t.Error("analysis should still run on out-of-domain inputs")
	}
}

func TestHandleUnderwriteOptions(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/underwrite", nil)
	rec := httptest.NewRecorder()
	testHandler().HandleUnderwrite(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
