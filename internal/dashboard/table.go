package dashboard

import (
	"sort"

	"github.com/rollhouse/salesdash/internal/domain"
)

// PageSize is the fixed row count per table page.
const PageSize = 25

// SortColumn names a sortable column of the item table.
type SortColumn string

const (
	SortName     SortColumn = "name"
	SortCategory SortColumn = "category"
	SortRevenue  SortColumn = "revenue"
	SortQuantity SortColumn = "quantity"
)

func (c SortColumn) numeric() bool {
	return c == SortRevenue || c == SortQuantity
}

// ValidSortColumn reports whether s names a known column.
func ValidSortColumn(s string) bool {
	switch SortColumn(s) {
	case SortName, SortCategory, SortRevenue, SortQuantity:
		return true
	}
	return false
}

// TableState is the current sort and page of the item table. States are
// values; Select and WithPage return new states.
type TableState struct {
	Column     SortColumn `json:"column"`
	Descending bool       `json:"descending"`
	Page       int        `json:"page"`
}

// NewTableState matches the rollup's natural order: revenue descending,
// first page.
func NewTableState() TableState {
	return TableState{Column: SortRevenue, Descending: true}
}

// DefaultState is the first selection of a column: ascending for string
// columns, descending for numeric ones.
func DefaultState(col SortColumn) TableState {
	return TableState{Column: col, Descending: col.numeric()}
}

// Select applies a column selection: re-selecting the current column
// toggles direction, a new column gets its type default (ascending for
// strings, descending for numerics). Either way the page resets to 0.
func (s TableState) Select(col SortColumn) TableState {
	if col == s.Column {
		s.Descending = !s.Descending
	} else {
		s.Column = col
		s.Descending = col.numeric()
	}
	s.Page = 0
	return s
}

// WithPage moves to a 0-indexed page; negative pages clamp to 0.
func (s TableState) WithPage(page int) TableState {
	if page < 0 {
		page = 0
	}
	s.Page = page
	return s
}

// TablePage is one page of the sorted item table.
type TablePage struct {
	Rows       []domain.ItemTotal `json:"rows"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalRows  int                `json:"totalRows"`
	TotalPages int                `json:"totalPages"`
}

// Paginate re-sorts the full rollup under state and slices out one page.
// The input slice is not modified. Pages past the end clamp to the last
// page; an empty rollup yields one empty page 0.
func Paginate(rollup []domain.ItemTotal, state TableState) TablePage {
	rows := make([]domain.ItemTotal, len(rollup))
	copy(rows, rollup)

	less := lessFunc(state.Column)
	sort.SliceStable(rows, func(i, j int) bool {
		if state.Descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})

	totalPages := (len(rows) + PageSize - 1) / PageSize
	page := state.Page
	if page < 0 {
		page = 0
	}
	if totalPages > 0 && page >= totalPages {
		page = totalPages - 1
	}
	if totalPages == 0 {
		page = 0
	}

	start := page * PageSize
	end := start + PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return TablePage{
		Rows:       rows[start:end],
		Page:       page,
		PageSize:   PageSize,
		TotalRows:  len(rollup),
		TotalPages: totalPages,
	}
}

func lessFunc(col SortColumn) func(a, b domain.ItemTotal) bool {
	switch col {
	case SortCategory:
		return func(a, b domain.ItemTotal) bool { return a.Category < b.Category }
	case SortRevenue:
		return func(a, b domain.ItemTotal) bool { return a.Revenue.LessThan(b.Revenue) }
	case SortQuantity:
		return func(a, b domain.ItemTotal) bool { return a.Quantity < b.Quantity }
	default:
		return func(a, b domain.ItemTotal) bool { return a.Name < b.Name }
	}
}
