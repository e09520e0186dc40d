package scenarios

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/underwrite"
)

// Summary is the list-view shape of a preset: the name, its one-line
// tagline, and which input fields it overrides.
type Summary struct {
	Name    string   `json:"name"`
	Tagline string   `json:"tagline,omitempty"`
	Fields  []string `json:"fields"`
}

// ApplyRequest resolves a partial base over the defaults, then applies
// the named scenario on top.
type ApplyRequest struct {
	Base     scenario.Override `json:"base,omitempty"`
	Scenario string            `json:"scenario"`
}

type ApplyResponse struct {
	Scenario string            `json:"scenario"`
	Fields   []string          `json:"fields"`
	Inputs   underwrite.Inputs `json:"inputs"`
}

// Handler serves the scenario preset catalog.
type Handler struct {
	presets []scenario.Scenario
}

func NewHandler(presets []scenario.Scenario) *Handler {
	return &Handler{presets: presets}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	summaries := make([]Summary, 0, len(h.presets))
	for _, sc := range h.presets {
		summaries = append(summaries, Summary{
			Name:    sc.Name,
			Tagline: sc.Tagline,
			Fields:  sc.Override.Fields(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Scenario == "" {
		http.Error(w, "Missing scenario name", http.StatusBadRequest)
		return
	}

	sc, ok := scenario.Find(h.presets, req.Scenario)
	if !ok {
		http.Error(w, fmt.Sprintf("Scenario not found: %s", req.Scenario), http.StatusNotFound)
		return
	}

	merged := sc.Override.Apply(req.Base.Apply(underwrite.Defaults()))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ApplyResponse{
		Scenario: sc.Name,
		Fields:   sc.Override.Fields(),
		Inputs:   merged,
	})
}
