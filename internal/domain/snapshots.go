package domain

import "github.com/shopspring/decimal"

// DepartmentSummary is one department's precomputed totals from the
// summary snapshot. Served as a navigation affordance, never recomputed.
type DepartmentSummary struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Quantity     int             `json:"quantity"`
	Transactions int             `json:"transactions"`
	UniqueItems  int             `json:"uniqueItems"`
	Categories   []string        `json:"categories"`
	DateRange    []string        `json:"dateRange"`
}

// SummarySnapshot mirrors summary.json produced by the upstream export.
type SummarySnapshot struct {
	GeneratedAt    string                       `json:"generatedAt"`
	DateRange      []string                     `json:"dateRange"`
	TotalRevenue   decimal.Decimal              `json:"totalRevenue"`
	Departments    map[string]DepartmentSummary `json:"departments"`
	CategoryColors map[string]string            `json:"categoryColors"`
}

// ForecastPoint is one predicted (or actual) week of a forecast series.
type ForecastPoint struct {
	WeekStart        string          `json:"weekStart"`
	WeekOfYear       int             `json:"weekOfYear"`
	Year             int             `json:"year"`
	PredictedRevenue decimal.Decimal `json:"predictedRevenue"`
}

// ForecastSnapshot mirrors forecast.json: named model series (e.g.
// "seasonal", "actual") computed upstream. The model itself is out of
// scope here; the series are passed through to the trend overlay.
type ForecastSnapshot struct {
	Forecasts   map[string][]ForecastPoint `json:"forecasts"`
	GeneratedAt string                     `json:"generatedAt"`
}
