// Package pipeline runs the batch underwriting flow: a property export in,
// one analyzed outcome per listing out, optionally persisted.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"dealwise/pkg/core/analysis"
	"dealwise/pkg/core/ingest"
	"dealwise/pkg/core/store"
	"dealwise/pkg/core/underwrite"
	"dealwise/pkg/core/validate"
)

// Options tunes a run. Strict stops the run on the first validation error;
// the default logs the issues and underwrites anyway. Save upserts each
// mapped deal's inputs into the repository.
type Options struct {
	Strict bool
	Save   bool
}

// Outcome is the per-listing result of a run. Analysis is nil when the
// listing was skipped; Err says why.
type Outcome struct {
	ListingID string                 `json:"listingId,omitempty"`
	Name      string                 `json:"name,omitempty"`
	Filled    []string               `json:"filled,omitempty"`
	Warnings  []string               `json:"warnings,omitempty"`
	Issues    []validate.Issue       `json:"issues,omitempty"`
	Analysis  *analysis.DealAnalysis `json:"analysis,omitempty"`
	Err       error                  `json:"-"`
}

// Orchestrator manages the end-to-end flow: load export, map listings over
// the base assumptions, screen the inputs, analyze, and store.
type Orchestrator struct {
	base     underwrite.Inputs
	analyzer *analysis.Engine
	repo     store.DealRepository
	log      *logrus.Logger
	opts     Options
}

// NewOrchestrator creates an orchestrator. repo may be nil when nothing
// should be persisted even with Save set.
func NewOrchestrator(repo store.DealRepository, log *logrus.Logger, opts Options) *Orchestrator {
	if log == nil {
		log = logrus.New()
	}
	return &Orchestrator{
		base:     underwrite.Defaults(),
		analyzer: analysis.NewEngine(),
		repo:     repo,
		log:      log,
		opts:     opts,
	}
}

// SetBaseInputs replaces the baseline the listings are mapped over, for
// scenario-adjusted runs.
func (o *Orchestrator) SetBaseInputs(in underwrite.Inputs) {
	o.base = in
}

// RunForExport underwrites every listing in a property export file.
// Unidentifiable listings are skipped with a logged warning. In strict mode
// a validation error aborts the run; otherwise the engines compute whatever
// the listing mapped to.
func (o *Orchestrator) RunForExport(ctx context.Context, path string) ([]Outcome, error) {
	start := time.Now()

	listings, err := ingest.LoadExport(path)
	if err != nil {
		return nil, err
	}
	o.log.Infof("Loaded %d listings from %s", len(listings), path)

	outcomes := make([]Outcome, 0, len(listings))
	analyzed, skipped, saved := 0, 0, 0

	for _, l := range listings {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		res := ingest.MapListing(l, o.base)
		out := Outcome{
			ListingID: res.ListingID,
			Name:      res.Name,
			Filled:    res.Filled,
			Warnings:  res.Warnings,
		}
		for _, w := range res.Warnings {
			o.log.Warnf("Listing %s: %s", res.ListingID, w)
		}

		if res.Name == "" {
			out.Err = fmt.Errorf("listing cannot be identified, skipping")
			skipped++
			outcomes = append(outcomes, out)
			continue
		}

		out.Issues = validate.CheckInputs(res.Inputs)
		for _, issue := range out.Issues {
			o.log.Warnf("Deal %s: %s %s (value %v)", res.Name, issue.Severity, issue.Message, issue.Value)
		}
		if validate.HasErrors(out.Issues) && o.opts.Strict {
			outcomes = append(outcomes, out)
			return outcomes, fmt.Errorf("strict validation failed for %s", res.Name)
		}

		a, err := o.analyzer.Analyze(res.Inputs)
		if err != nil {
			out.Err = fmt.Errorf("analyze %s: %w", res.Name, err)
			outcomes = append(outcomes, out)
			continue
		}
		out.Analysis = a
		analyzed++
		o.log.Infof("Deal %s: score %.0f (%s), cash flow %.2f/mo",
			res.Name, a.Verdict.Score, a.Verdict.Label, a.Metrics.CashFlowMonthly)

		if o.opts.Save && o.repo != nil {
			rec := store.DealRecord{
				Name:      res.Name,
				SourceRef: res.ListingID,
				Inputs:    res.Inputs,
			}
			if err := o.repo.Save(ctx, &rec); err != nil {
				out.Err = fmt.Errorf("save %s: %w", res.Name, err)
				o.log.Errorf("Failed to save deal %s: %v", res.Name, err)
			} else {
				saved++
			}
		}

		outcomes = append(outcomes, out)
	}

	o.log.Infof("Export run complete: %d analyzed, %d skipped, %d saved in %v",
		analyzed, skipped, saved, time.Since(start))
	return outcomes, nil
}
