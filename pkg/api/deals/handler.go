package deals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/store"
	"dealwise/pkg/core/underwrite"
)

// SaveRequest upserts a deal by name. Inputs are partial and resolve
// over the baseline before storage, so a saved record always carries a
// complete assumption set.
type SaveRequest struct {
	Name      string            `json:"name"`
	SourceRef string            `json:"sourceRef,omitempty"`
	Inputs    scenario.Override `json:"inputs"`
}

// Handler serves the stored-deal surface. repo is nil when no
// DATABASE_URL was configured, in which case every endpoint answers 503.
type Handler struct {
	repo store.DealRepository
	log  *logrus.Logger
}

func NewHandler(repo store.DealRepository, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{repo: repo, log: log}
}

func (h *Handler) unavailable(w http.ResponseWriter) bool {
	if h.repo != nil {
		return false
	}
	http.Error(w, "Deal store is not configured (set DATABASE_URL)", http.StatusServiceUnavailable)
	return true
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if h.unavailable(w) {
		return
	}

	records, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Errorf("List deals failed: %v", err)
		http.Error(w, fmt.Sprintf("List failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if h.unavailable(w) {
		return
	}

	name := mux.Vars(r)["name"]
	rec, err := h.repo.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Deal not found: %s", name), http.StatusNotFound)
			return
		}
		h.log.Errorf("Load deal %s failed: %v", name, err)
		http.Error(w, fmt.Sprintf("Load failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.unavailable(w) {
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Missing deal name", http.StatusBadRequest)
		return
	}

	rec := &store.DealRecord{
		Name:      req.Name,
		SourceRef: req.SourceRef,
		Inputs:    req.Inputs.Apply(underwrite.Defaults()),
	}
	if err := h.repo.Save(r.Context(), rec); err != nil {
		h.log.Errorf("Save deal %s failed: %v", req.Name, err)
		http.Error(w, fmt.Sprintf("Save failed: %v", err), http.StatusInternalServerError)
		return
	}
	h.log.Infof("Saved deal %s (%s)", rec.Name, rec.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}
