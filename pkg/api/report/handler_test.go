package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dealwise/pkg/core/scenario"
)

func postReport(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(scenario.BuiltIn())
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)
	return rec
}

func TestHandleReportRendersBothFormats(t *testing.T) {
	rec := postReport(t, `{"name": "12 Maple St", "inputs": {}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Markdown, "# Deal Report: 12 Maple St") {
		t.Error("markdown missing title")
	}
	if !strings.Contains(resp.Markdown, "## [4] VERDICT") {
		t.Error("markdown missing verdict section")
	}
	if !strings.Contains(resp.HTML, "<h2") || !strings.Contains(resp.HTML, "<table>") {
		t.Error("html missing rendered structure")
	}
}

func TestHandleReportDefaultName(t *testing.T) {
	rec := postReport(t, `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Markdown, "# Deal Report: Untitled Deal") {
		t.Error("expected the fallback deal name")
	}
}

func TestHandleReportWithScenario(t *testing.T) {
	rec := postReport(t, `{"name": "Stress", "scenario": "high-vacancy-stress"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 12% vacancy on the baseline deepens the loss well past the usual
	// -534.92/mo; the verdict stays At Risk.
	if !strings.Contains(resp.Markdown, "At Risk") {
		t.Error("expected an At Risk verdict under stress")
	}
}

func TestHandleReportUnknownScenario(t *testing.T) {
	rec := postReport(t, `{"scenario": "moonshot"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleReportInvalidBody(t *testing.T) {
	rec := postReport(t, `][`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
