package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

// Summarizer turns the raw allocation results into the report the UI and the
// exporter render: KPIs, chart series and the product/customer drill-down.
type Summarizer struct {
	logger     *slog.Logger
	dateFormat string
}

// NewSummarizer creates a summarizer. Months in chart labels use the
// "Jan 2006" format.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger, dateFormat: "Jan 2006"}
}

// Build assembles the complete analysis report from allocation results. The
// input order of results is preserved in the matrix and the hierarchy.
func (s *Summarizer) Build(results []domain.AllocationResult) *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		Summary:     s.buildSummary(results),
		Hierarchy:   s.buildHierarchy(results),
		Charts: domain.ChartData{
			MonthlyForecast: s.buildMonthlySeries(results),
		},
	}
	report.Charts.Sufficiency = []domain.SufficiencySlice{
		{Label: "Quantity Covered", Quantity: report.Summary.TotalCoveredQty},
		{Label: "Quantity Missing", Quantity: report.Summary.TotalMissingQty},
	}

	s.logger.Info("report built",
		slog.Int("orders", report.Summary.TotalOrders),
		slog.Float64("capacity_percent", report.Summary.StockCapacityPercent),
		slog.Float64("missing_qty", report.Summary.TotalMissingQty))

	return report
}

func (s *Summarizer) buildSummary(results []domain.AllocationResult) domain.Summary {
	summary := domain.Summary{TotalOrders: len(results)}
	for _, r := range results {
		summary.TotalForecastQty += r.Order.Quantity
		summary.TotalMissingQty += r.Missing
		if r.Status == domain.StatusYes {
			summary.OrdersFullyCovered++
		}
	}
	summary.TotalCoveredQty = summary.TotalForecastQty - summary.TotalMissingQty
	if summary.TotalOrders > 0 {
		summary.StockCapacityPercent = float64(summary.OrdersFullyCovered) / float64(summary.TotalOrders) * 100
	}
	return summary
}

// buildMonthlySeries sums forecasted and missing quantities per forecast
// month, ascending.
func (s *Summarizer) buildMonthlySeries(results []domain.AllocationResult) []domain.MonthlyPoint {
	type monthTotal struct {
		start    time.Time
		forecast float64
		missing  float64
	}

	totals := make(map[time.Time]*monthTotal)
	for _, r := range results {
		d := r.Order.ForecastDate
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		mt, ok := totals[start]
		if !ok {
			mt = &monthTotal{start: start}
			totals[start] = mt
		}
		mt.forecast += r.Order.Quantity
		mt.missing += r.Missing
	}

	months := make([]*monthTotal, 0, len(totals))
	for _, mt := range totals {
		months = append(months, mt)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].start.Before(months[j].start) })

	points := make([]domain.MonthlyPoint, 0, len(months))
	for _, mt := range months {
		points = append(points, domain.MonthlyPoint{
			Month:       mt.start.Format(s.dateFormat),
			ForecastQty: mt.forecast,
			MissingQty:  mt.missing,
		})
	}
	return points
}

// buildHierarchy groups results product -> customer -> order, keeping
// first-appearance order at both levels.
func (s *Summarizer) buildHierarchy(results []domain.AllocationResult) []domain.ProductGroup {
	var products []domain.ProductGroup
	productIdx := make(map[string]int)

	for _, r := range results {
		pi, ok := productIdx[r.Order.Product]
		if !ok {
			pi = len(products)
			productIdx[r.Order.Product] = pi
			products = append(products, domain.ProductGroup{Product: r.Order.Product})
		}
		p := &products[pi]
		p.TotalForecast += r.Order.Quantity
		p.TotalMissing += r.Missing

		ci := -1
		for i := range p.Customers {
			if p.Customers[i].Customer == r.Order.Customer {
				ci = i
				break
			}
		}
		if ci < 0 {
			ci = len(p.Customers)
			p.Customers = append(p.Customers, domain.CustomerGroup{
				Customer:       r.Order.Customer,
				MinShelfMonths: r.Order.MinShelfMonths,
			})
		}
		c := &p.Customers[ci]
		c.TotalForecast += r.Order.Quantity
		c.TotalMissing += r.Missing
		c.Orders = append(c.Orders, r)
	}

	return products
}
