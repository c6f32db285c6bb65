// Package exporter renders an analysis report as an Excel workbook.
//
// The workbook carries two sheets: "Allocation Matrix" with one row per
// forecasted order (the same columns the web UI shows) and "Summary" with
// the KPIs and the monthly totals. Output is Excel rather than CSV because
// the data arrives as Excel and the report is shared back the same way.
//
//	writer := exporter.NewExcelWriter(logger)
//	err := writer.Save(report, "stock-forecast-report.xlsx")
package exporter
