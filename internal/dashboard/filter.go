// Package dashboard is the aggregation engine: pure functions that turn
// the immutable record set plus a Filters value into every derived view
// the dashboard displays.
package dashboard

import (
	"strings"

	"github.com/rollhouse/salesdash/internal/domain"
)

// Apply returns the records matching every active filter dimension. The
// input is never mutated; an empty result is valid and flows through the
// view builders as zero aggregates.
func Apply(records []domain.TransactionRecord, f domain.Filters) []domain.TransactionRecord {
	var categories map[string]struct{}
	if len(f.Categories) > 0 {
		categories = make(map[string]struct{}, len(f.Categories))
		for _, c := range f.Categories {
			categories[c] = struct{}{}
		}
	}
	search := strings.ToLower(f.SearchTerm)
	filterDept := f.Department != "" && f.Department != domain.DepartmentAll

	out := make([]domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		if filterDept && r.Department != f.Department {
			continue
		}
		if f.DateRange != nil && !f.DateRange.Contains(r.Date) {
			continue
		}
		if categories != nil {
			if _, ok := categories[r.Category]; !ok {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}
