package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sofiaalage/product-sales-forecasting/internal/allocation"
	"github.com/sofiaalage/product-sales-forecasting/internal/config"
	"github.com/sofiaalage/product-sales-forecasting/internal/forecast"
	"github.com/sofiaalage/product-sales-forecasting/internal/infrastructure"
	"github.com/sofiaalage/product-sales-forecasting/internal/report"
	"github.com/sofiaalage/product-sales-forecasting/internal/workbook"
	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

// Options are the per-request overrides a caller may supply with an upload.
// Zero values fall back to the configured defaults.
type Options struct {
	DefaultShelfLifeMonths int `validate:"omitempty,gte=0,lte=60"`
	WindowStartMonth       int `validate:"omitempty,gte=1,lte=12"`
	WindowEndMonth         int `validate:"omitempty,gte=1,lte=12"`
}

// AnalysisService runs the full pipeline for one uploaded workbook:
// parse -> forecast -> allocate -> summarize. One synchronous pass, no state
// kept between requests.
type AnalysisService struct {
	logger  *slog.Logger
	cfg     config.AnalysisConfig
	metrics *infrastructure.Metrics
}

// NewAnalysisService creates the analysis service. metrics may be nil (the
// batch CLI runs without a scrape endpoint).
func NewAnalysisService(logger *slog.Logger, cfg config.AnalysisConfig, metrics *infrastructure.Metrics) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{logger: logger, cfg: cfg, metrics: metrics}
}

// Analyze processes one uploaded workbook and returns the complete report.
func (s *AnalysisService) Analyze(ctx context.Context, r io.Reader, opts Options) (*domain.AnalysisReport, error) {
	start := time.Now()

	rep, err := s.run(ctx, r, opts)
	s.metrics.RecordAnalysis(ctx, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "analysis completed",
		slog.Int("orders", rep.Summary.TotalOrders),
		slog.Float64("capacity_percent", rep.Summary.StockCapacityPercent),
		slog.Duration("duration", time.Since(start)))

	return rep, nil
}

func (s *AnalysisService) run(ctx context.Context, r io.Reader, opts Options) (*domain.AnalysisReport, error) {
	shelfMonths := s.cfg.DefaultShelfLifeMonths
	if opts.DefaultShelfLifeMonths > 0 {
		shelfMonths = opts.DefaultShelfLifeMonths
	}
	windowStart := time.Month(s.cfg.WindowStartMonth)
	if opts.WindowStartMonth > 0 {
		windowStart = time.Month(opts.WindowStartMonth)
	}
	windowEnd := time.Month(s.cfg.WindowEndMonth)
	if opts.WindowEndMonth > 0 {
		windowEnd = time.Month(opts.WindowEndMonth)
	}
	if windowStart > windowEnd {
		return nil, fmt.Errorf("window start month %d after end month %d", windowStart, windowEnd)
	}

	parser := workbook.NewParser(s.logger, shelfMonths)
	dataset, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("workbook parsing failed: %w", err)
	}

	generator := forecast.NewGenerator(s.logger, forecast.Config{
		WindowStart:            windowStart,
		WindowEnd:              windowEnd,
		DefaultShelfLifeMonths: shelfMonths,
	})
	orders := generator.Generate(dataset.Shipments, dataset.Rules)

	allocator := allocation.NewAllocator(s.logger, dataset.Lots)
	results := allocator.Run(orders)

	return report.NewSummarizer(s.logger).Build(results), nil
}
