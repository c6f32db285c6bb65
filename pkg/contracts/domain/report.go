package domain

import "time"

// Summary holds the headline KPIs of one analysis run.
type Summary struct {
	TotalOrders          int     `json:"total_orders"`
	OrdersFullyCovered   int     `json:"orders_fully_covered"`
	StockCapacityPercent float64 `json:"stock_capacity_percent"`
	TotalForecastQty     float64 `json:"total_forecast_qty"`
	TotalCoveredQty      float64 `json:"total_covered_qty"`
	TotalMissingQty      float64 `json:"total_missing_qty"`
}

// MonthlyPoint is one bar of the monthly forecast chart.
type MonthlyPoint struct {
	Month       string  `json:"month"`
	ForecastQty float64 `json:"forecast_qty"`
	MissingQty  float64 `json:"missing_qty"`
}

// SufficiencySlice is one slice of the covered-vs-missing pie chart.
type SufficiencySlice struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// ChartData carries the two chart series rendered by the web UI.
type ChartData struct {
	MonthlyForecast []MonthlyPoint     `json:"monthly_forecast"`
	Sufficiency     []SufficiencySlice `json:"sufficiency"`
}

// CustomerGroup is the middle level of the drill-down hierarchy.
type CustomerGroup struct {
	Customer       string             `json:"customer"`
	MinShelfMonths int                `json:"min_shelf_months"`
	TotalForecast  float64            `json:"total_forecast"`
	TotalMissing   float64            `json:"total_missing"`
	Orders         []AllocationResult `json:"orders"`
}

// ProductGroup is the top level of the drill-down hierarchy.
type ProductGroup struct {
	Product       string          `json:"product"`
	TotalForecast float64         `json:"total_forecast"`
	TotalMissing  float64         `json:"total_missing"`
	Customers     []CustomerGroup `json:"customers"`
}

// AnalysisReport is the complete output of one upload: the detailed matrix,
// the KPIs, the chart series and the product/customer hierarchy.
type AnalysisReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Summary     Summary            `json:"summary"`
	Results     []AllocationResult `json:"results"`
	Hierarchy   []ProductGroup     `json:"hierarchy"`
	Charts      ChartData          `json:"charts"`
}
