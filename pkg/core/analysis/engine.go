// Package analysis runs every underwriting engine over one set of deal
// assumptions and bundles the outputs into a single record.
package analysis

import (
	"time"

	"dealwise/pkg/core/narrative"
	"dealwise/pkg/core/projection"
	"dealwise/pkg/core/rating"
	"dealwise/pkg/core/sensitivity"
	"dealwise/pkg/core/underwrite"
)

// Engine orchestrates the full underwriting pass over a deal.
type Engine struct{}

// NewEngine creates a new instance of the engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze derives the complete analysis from one Inputs record. The engines
// run leaf-first: the metrics feed the verdict, the projection horizon, the
// sensitivity grid, and the narrative lists. Aside from the timestamp the
// result is a pure function of the inputs, so two calls on the same record
// produce identical numbers.
func (e *Engine) Analyze(in underwrite.Inputs) (*DealAnalysis, error) {
	m := underwrite.Compute(in)

	return &DealAnalysis{
		Inputs:      in,
		Metrics:     m,
		Verdict:     rating.Rate(m, in),
		Projections: projection.Project(in, m, projection.DefaultYears),
		Sensitivity: sensitivity.Run(in, m),
		Narrative:   narrative.Build(m, in),
		AnalyzedAt:  time.Now(),
	}, nil
}
