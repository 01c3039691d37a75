package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"

	"retailcli/internal/chart"
	"retailcli/internal/config"
	"retailcli/internal/dataset"
	"retailcli/internal/errors"
	"retailcli/internal/intelligence"
	"retailcli/internal/preprocess"
)

// Result holds every derived table and chart from one pipeline run, plus the
// aggregated non-fatal diagnostics.
type Result struct {
	RunID       string
	Cleaned     *preprocess.Table
	RFM         []intelligence.RFMProfile
	Retention   *intelligence.RetentionMatrix
	CLV         []intelligence.CLVRecord
	Pareto      *intelligence.ParetoRank
	Segments    []intelligence.SegmentSummary
	Countries   []intelligence.CountrySummary
	Heatmap     *plot.Plot
	ParetoChart *plot.Plot
	Diagnostics *errors.Diagnostics
	Elapsed     time.Duration
}

// Orchestrator wires the preprocessing, intelligence, and visualization
// stages into one sequential run. There is no partial-failure recovery: a
// fatal stage error aborts the run with the originating error wrapped.
type Orchestrator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a pipeline orchestrator
func New(cfg *config.Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{cfg: cfg, logger: logger}
}

// Run executes the full pipeline over the raw transaction table
func (o *Orchestrator) Run(ctx context.Context, raw []dataset.Transaction) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:       uuid.New().String(),
		Diagnostics: errors.NewDiagnostics(),
	}

	o.logger.InfoContext(ctx, "starting analytics run",
		"run_id", result.RunID,
		"raw_rows", len(raw))

	// Stage 1: preprocess
	cleaned, diags := preprocess.Clean(raw, o.cfg.Analytics.CancellationMarker)
	result.Cleaned = cleaned
	result.Diagnostics.Merge(diags)
	o.logger.InfoContext(ctx, "preprocessing complete",
		"run_id", result.RunID,
		"cleaned_rows", len(cleaned.Rows),
		"dropped", result.Diagnostics.Count(errors.CodeDataQuality))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	// Stage 2: intelligence. The four computations are independent and
	// order-insensitive; they run sequentially over the immutable table.
	opts, err := o.engineOptions()
	if err != nil {
		return nil, fmt.Errorf("engine options: %w", err)
	}

	result.RFM = intelligence.BuildRFM(cleaned, opts, result.Diagnostics)
	result.Retention = intelligence.BuildRetention(cleaned, result.Diagnostics)
	result.CLV = intelligence.BuildCLV(cleaned, opts)
	result.Pareto = intelligence.BuildPareto(cleaned, opts.ParetoThreshold)
	result.Segments = intelligence.AggregateBySegment(result.RFM)
	result.Countries = intelligence.AggregateByCountry(cleaned)

	o.logger.InfoContext(ctx, "intelligence computations complete",
		"run_id", result.RunID,
		"customers", len(result.RFM),
		"cohorts", len(result.Retention.CohortMonths),
		"pareto_threshold_rank", result.Pareto.ThresholdRank)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	// Stage 3: charts
	result.Heatmap, err = chart.RetentionHeatmap(result.Retention)
	if err != nil {
		return nil, fmt.Errorf("render retention heatmap: %w", err)
	}
	result.ParetoChart, err = chart.ParetoCurve(result.Pareto)
	if err != nil {
		return nil, fmt.Errorf("render pareto curve: %w", err)
	}

	result.Elapsed = time.Since(start)
	o.logger.InfoContext(ctx, "analytics run complete",
		"run_id", result.RunID,
		"elapsed", result.Elapsed,
		"diagnostics", result.Diagnostics.Summary())

	return result, nil
}

// engineOptions maps the analytics config onto engine options
func (o *Orchestrator) engineOptions() (intelligence.Options, error) {
	opts := intelligence.Options{
		Quantiles:        o.cfg.Analytics.RFMQuantiles,
		LifespanMonths:   o.cfg.Analytics.CLVLifespanMonths,
		ObservedLifespan: o.cfg.Analytics.CLVLifespan == config.LifespanObserved,
		ParetoThreshold:  o.cfg.Analytics.ParetoThreshold,
	}
	reference, err := o.cfg.Analytics.ParseReferenceDate()
	if err != nil {
		return opts, err
	}
	opts.ReferenceDate = reference
	return opts, nil
}
