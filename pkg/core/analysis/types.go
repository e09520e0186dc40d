package analysis

import (
	"time"

	"dealwise/pkg/core/narrative"
	"dealwise/pkg/core/projection"
	"dealwise/pkg/core/rating"
	"dealwise/pkg/core/sensitivity"
	"dealwise/pkg/core/underwrite"
)

// DealAnalysis is the complete underwriting profile for a single deal: the
// assumptions that went in, every derived output, and when the pass ran.
// Metrics are display-only and are never fed back in as inputs.
type DealAnalysis struct {
	Inputs  underwrite.Inputs  `json:"inputs"`
	Metrics underwrite.Metrics `json:"metrics"`

	// Composite health score with its display label and tone.
	Verdict rating.Verdict `json:"verdict"`

	// Multi-year outlook at the standard 1/3/5 horizon.
	Projections []projection.YearProjection `json:"projections"`

	// Cash flow under rent and vacancy perturbations.
	Sensitivity sensitivity.Grid `json:"sensitivity"`

	// Threshold-driven flags, strengths, and recommendations.
	Narrative narrative.Narrative `json:"narrative"`

	AnalyzedAt time.Time `json:"analyzedAt"`
}
