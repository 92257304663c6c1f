package domain

import "github.com/shopspring/decimal"

func init() {
	// Snapshot documents and API payloads carry money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// DepartmentAll is the sentinel meaning "no department filter".
const DepartmentAll = "all"

// TransactionRecord is one POS line-item aggregate row: one item on one
// date in one department. It is never mutated after load.
type TransactionRecord struct {
	Date          string          `json:"date"`
	Name          string          `json:"name"`
	Department    string          `json:"department"`
	Subdepartment string          `json:"subdepartment"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
	Transactions  int             `json:"transactions"`
}

// DateRange is a closed interval of ISO dates, inclusive on both ends.
// Dates are zero-padded YYYY-MM-DD strings, so ordering is lexicographic.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r DateRange) Valid() bool {
	return r.Start <= r.End
}

func (r DateRange) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}

// Filters is the set of active view constraints. A Filters value is
// replaced wholesale on every change, never mutated in place. Dimensions
// compose with AND; category membership is OR within the set.
type Filters struct {
	Department string     `json:"department"`
	DateRange  *DateRange `json:"dateRange,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	SearchTerm string     `json:"searchTerm,omitempty"`
}
