package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

const (
	// MatrixSheet holds the detailed allocation matrix.
	MatrixSheet = "Allocation Matrix"
	// SummarySheet holds the KPIs and the monthly totals.
	SummarySheet = "Summary"

	dateFormat = "2006-01-02"
)

var matrixHeaders = []interface{}{
	"Item Description",
	"Forecast Ship Date",
	"Forecasted Qty",
	"Ship To Customer",
	"Initial Stock Qty",
	"Fulfilled Qty",
	"Missing Qty",
	"Remaining Stock After Order",
	"Stock Expiration (Earliest)",
	"Min Shelf-Life (Months)",
	"Required Expiration (Customer)",
	"In Stock Status",
}

// ExcelWriter exports an analysis report as a workbook, mirroring the
// format of the uploaded input so results can be shared the same way the
// data arrived.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel report writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write renders the report workbook to w.
func (e *ExcelWriter) Write(report *domain.AnalysisReport, w io.Writer) error {
	f, err := e.build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save renders the report workbook to a file on disk.
func (e *ExcelWriter) Save(report *domain.AnalysisReport, path string) error {
	f, err := e.build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	e.logger.Info("report workbook saved",
		slog.String("path", path),
		slog.Int("orders", report.Summary.TotalOrders))
	return nil
}

func (e *ExcelWriter) build(report *domain.AnalysisReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", MatrixSheet); err != nil {
		return nil, fmt.Errorf("failed to name matrix sheet: %w", err)
	}
	if err := e.writeMatrix(f, report); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := e.writeSummary(f, report); err != nil {
		return nil, err
	}

	return f, nil
}

func (e *ExcelWriter) writeMatrix(f *excelize.File, report *domain.AnalysisReport) error {
	if err := f.SetSheetRow(MatrixSheet, "A1", &matrixHeaders); err != nil {
		return fmt.Errorf("failed to write matrix headers: %w", err)
	}

	for i, r := range report.Results {
		stockExp := "N/A"
		if r.StockExpiration != nil {
			stockExp = r.StockExpiration.Format(dateFormat)
		}
		row := []interface{}{
			r.Order.Product,
			r.Order.ForecastDate.Format(dateFormat),
			r.Order.Quantity,
			r.Order.Customer,
			r.InitialStock,
			r.Fulfilled,
			r.Missing,
			r.RemainingStock,
			stockExp,
			r.Order.MinShelfMonths,
			r.RequiredExpiration.Format(dateFormat),
			string(r.Status),
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell reference: %w", err)
		}
		if err := f.SetSheetRow(MatrixSheet, ref, &row); err != nil {
			return fmt.Errorf("failed to write matrix row %d: %w", i+2, err)
		}
	}
	return nil
}

func (e *ExcelWriter) writeSummary(f *excelize.File, report *domain.AnalysisReport) error {
	rows := [][]interface{}{
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Orders", report.Summary.TotalOrders},
		{"Orders Fully Covered", report.Summary.OrdersFullyCovered},
		{"Stock Capacity (%)", report.Summary.StockCapacityPercent},
		{"Total Forecasted Qty", report.Summary.TotalForecastQty},
		{"Total Covered Qty", report.Summary.TotalCoveredQty},
		{"Total Missing Qty", report.Summary.TotalMissingQty},
		{},
		{"Month", "Forecasted Qty", "Missing Qty"},
	}
	for _, p := range report.Charts.MonthlyForecast {
		rows = append(rows, []interface{}{p.Month, p.ForecastQty, p.MissingQty})
	}

	for i := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell reference: %w", err)
		}
		if err := f.SetSheetRow(SummarySheet, ref, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}
