package domain

import "github.com/shopspring/decimal"

// Summary holds the KPI totals over a filtered record set.
type Summary struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalQuantity     int             `json:"totalQuantity"`
	TotalTransactions int             `json:"totalTransactions"`
	UniqueItems       int             `json:"uniqueItems"`
}

// CategoryRevenue is one row of the category breakdown, sorted by revenue
// descending with first-seen order breaking ties.
type CategoryRevenue struct {
	Category     string          `json:"category"`
	Revenue      decimal.Decimal `json:"revenue"`
	Quantity     int             `json:"quantity"`
	Transactions int             `json:"transactions"`
}

// WeeklyPoint is one week of the trend series, keyed by the Monday that
// starts the week.
type WeeklyPoint struct {
	WeekStart    string          `json:"weekStart"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

// ItemTotal is one row of the item rollup. Category is taken from the
// first contributing record; item names are category-homogeneous upstream.
type ItemTotal struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Revenue      decimal.Decimal `json:"revenue"`
	Quantity     int             `json:"quantity"`
	Transactions int             `json:"transactions"`
}

// Dashboard bundles the four independent views computed from one
// (record set, filters) pair.
type Dashboard struct {
	Summary    Summary           `json:"summary"`
	Categories []CategoryRevenue `json:"categories"`
	Weekly     []WeeklyPoint     `json:"weekly"`
	TopItems   []ItemTotal       `json:"topItems"`
}

// SeasonalityPoint is one ISO week of one year.
type SeasonalityPoint struct {
	Week    int             `json:"week"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Seasonality is multi-year weekly revenue bucketed by ISO week-of-year,
// used for year-over-year overlay charts. Weeks past 52 fold into 52.
type Seasonality struct {
	ByYearWeek   map[string][]SeasonalityPoint `json:"byYearWeek"`
	DateRange    *DateRange                    `json:"dateRange,omitempty"`
	TotalRevenue decimal.Decimal               `json:"totalRevenue"`
	Years        []int                         `json:"years"`
}
