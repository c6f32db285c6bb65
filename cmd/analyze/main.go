package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sofiaalage/product-sales-forecasting/internal/config"
	"github.com/sofiaalage/product-sales-forecasting/internal/exporter"
	"github.com/sofiaalage/product-sales-forecasting/internal/infrastructure"
	"github.com/sofiaalage/product-sales-forecasting/internal/services"
)

// Batch counterpart of the web upload: reads a workbook from disk and writes
// the report workbook next to it.
func main() {
	var (
		inPath      = flag.String("in", "", "input workbook (.xlsx) with stock, shipments and shelf life sheets")
		outPath     = flag.String("out", "stock-forecast-report.xlsx", "output report workbook")
		shelfMonths = flag.Int("shelf-months", 0, "default shelf life in months for customers without a rule (0 = configured default)")
		windowStart = flag.Int("window-start", 0, "first prior-year month to forecast (1-12, 0 = configured default)")
		windowEnd   = flag.Int("window-end", 0, "last prior-year month to forecast (1-12, 0 = configured default)")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -in workbook.xlsx [-out report.xlsx]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	file, err := os.Open(*inPath)
	if err != nil {
		logger.Error("failed to open input workbook",
			slog.String("path", *inPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer file.Close()

	service := services.NewAnalysisService(logger, cfg.Analysis, nil)
	report, err := service.Analyze(context.Background(), file, services.Options{
		DefaultShelfLifeMonths: *shelfMonths,
		WindowStartMonth:       *windowStart,
		WindowEndMonth:         *windowEnd,
	})
	if err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := exporter.NewExcelWriter(logger).Save(report, *outPath); err != nil {
		logger.Error("failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("report written",
		slog.String("path", *outPath),
		slog.Int("orders", report.Summary.TotalOrders),
		slog.Float64("capacity_percent", report.Summary.StockCapacityPercent),
		slog.Float64("missing_qty", report.Summary.TotalMissingQty))
}
