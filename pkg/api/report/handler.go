package report

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dealwise/pkg/core/analysis"
	"dealwise/pkg/core/report"
	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/underwrite"
)

type ReportRequest struct {
	Name     string            `json:"name,omitempty"`
	Notes    string            `json:"notes,omitempty"`
	Inputs   scenario.Override `json:"inputs"`
	Scenario string            `json:"scenario,omitempty"`
}

type ReportResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// Handler renders analyst reports over HTTP.
type Handler struct {
	engine  *analysis.Engine
	builder *report.Builder
	presets []scenario.Scenario
}

func NewHandler(presets []scenario.Scenario) *Handler {
	return &Handler{
		engine:  analysis.NewEngine(),
		builder: report.NewBuilder(),
		presets: presets,
	}
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = "Untitled Deal"
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

	result, err := h.engine.Analyze(in)
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}

	md := h.builder.Markdown(result, req.Name, req.Notes)
	html, err := h.builder.HTML(result, req.Name, req.Notes)
	if err != nil {
		http.Error(w, fmt.Sprintf("HTML rendering failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReportResponse{Markdown: md, HTML: html})
}
