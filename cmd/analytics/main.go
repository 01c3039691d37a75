package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/plot/vg"

	"retailcli/internal/config"
	"retailcli/internal/dataset"
	"retailcli/internal/exporter"
	"retailcli/internal/infrastructure"
	"retailcli/internal/pipeline"
)

func main() {
	input := flag.String("in", "", "input dataset (CSV or XLSX); overrides RETAIL_INPUT_PATH")
	format := flag.String("format", "", "input format: csv or xlsx (default: by extension)")
	outDir := flag.String("out", "", "output directory for tables, charts and the workbook")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *input != "" {
		cfg.Input.Path = *input
	}
	if *format != "" {
		cfg.Input.Format = *format
	} else if *input != "" {
		switch filepath.Ext(*input) {
		case ".xlsx", ".xls":
			cfg.Input.Format = "xlsx"
		default:
			cfg.Input.Format = "csv"
		}
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "usage: analytics -in dataset.csv [-out dir]")
		os.Exit(2)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if err := run(cfg, logger); err != nil {
		logger.Error("analytics run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	var (
		raw []dataset.Transaction
		err error
	)
	switch cfg.Input.Format {
	case "xlsx":
		raw, err = dataset.LoadXLSX(cfg.Input.Path, cfg.Input.Sheet)
	default:
		raw, err = dataset.LoadCSV(cfg.Input.Path)
	}
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	orchestrator := pipeline.New(cfg, logger)
	result, err := orchestrator.Run(ctx, raw)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Export everything: six tables, the workbook, two charts
	bar := progressbar.Default(9)
	writer := exporter.NewCSVWriter(cfg.Output.Dir)

	steps := []func() error{
		func() error { return writer.WriteRFM(result.RFM) },
		func() error { return writer.WriteRetention(result.Retention) },
		func() error { return writer.WriteCLV(result.CLV) },
		func() error { return writer.WritePareto(result.Pareto) },
		func() error { return writer.WriteSegmentSummary(result.Segments) },
		func() error { return writer.WriteCountrySummary(result.Countries) },
		func() error {
			_, err := exporter.NewReportBuilder(cfg.Output.Dir).Build(
				result.RFM, result.Retention, result.CLV, result.Pareto, result.Segments, result.Countries)
			return err
		},
		func() error {
			return result.Heatmap.Save(
				vg.Length(cfg.Output.ChartWidthIn)*vg.Inch,
				vg.Length(cfg.Output.ChartHeightIn)*vg.Inch,
				filepath.Join(cfg.Output.Dir, "retention_heatmap.png"))
		},
		func() error {
			return result.ParetoChart.Save(
				vg.Length(cfg.Output.ChartWidthIn)*vg.Inch,
				vg.Length(cfg.Output.ChartHeightIn)*vg.Inch,
				filepath.Join(cfg.Output.Dir, "pareto_curve.png"))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	logger.Info("exports complete",
		"run_id", result.RunID,
		"output_dir", cfg.Output.Dir,
		"diagnostics", result.Diagnostics.Summary())
	return nil
}
