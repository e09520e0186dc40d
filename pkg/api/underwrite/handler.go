package underwrite

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"dealwise/pkg/core/analysis"
	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/underwrite"
	"dealwise/pkg/core/validate"
)

// UnderwriteRequest carries a partial inputs block merged onto the
// baseline, plus an optional named scenario applied on top.
type UnderwriteRequest struct {
	Inputs   scenario.Override `json:"inputs"`
	Scenario string            `json:"scenario,omitempty"`
}

type UnderwriteResponse struct {
	Analysis *analysis.DealAnalysis `json:"analysis"`
	Issues   []validate.Issue       `json:"issues"`
}

// Handler holds dependencies for the underwrite endpoint.
type Handler struct {
	engine  *analysis.Engine
	presets []scenario.Scenario
	log     *logrus.Logger
}

func NewHandler(presets []scenario.Scenario, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		engine:  analysis.NewEngine(),
		presets: presets,
		log:     log,
	}
}

func (h *Handler) HandleUnderwrite(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req UnderwriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := req.Inputs.Apply(underwrite.Defaults())
	if req.Scenario != "" {
		sc, ok := scenario.Find(h.presets, req.Scenario)
		if !ok {
			http.Error(w, fmt.Sprintf("Scenario not found: %s", req.Scenario), http.StatusNotFound)
			return
		}
		in = sc.Override.Apply(in)
	}

	issues := validate.CheckInputs(in)

	result, err := h.engine.Analyze(in)
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}
	h.log.Infof("Underwrote deal: score %.0f (%s), cash flow %.2f/mo",
		result.Verdict.Score, result.Verdict.Label, result.Metrics.CashFlowMonthly)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UnderwriteResponse{Analysis: result, Issues: issues})
}
