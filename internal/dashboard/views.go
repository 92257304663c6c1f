package dashboard

import (
	"sort"
	"strings"
	"unicode"

	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultTopItems is how many rollup rows the top-items chart shows.
const DefaultTopItems = 20

// Summarize computes the KPI totals over the filtered set. UniqueItems is
// the count of distinct item names, not a sum.
func Summarize(records []domain.TransactionRecord) domain.Summary {
	s := domain.Summary{TotalRevenue: decimal.Zero}
	names := make(map[string]struct{})
	for _, r := range records {
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)
		s.TotalQuantity += r.Quantity
		s.TotalTransactions += r.Transactions
		names[r.Name] = struct{}{}
	}
	s.UniqueItems = len(names)
	return s
}

// CategoryBreakdown groups by category, sorted by revenue descending.
// Ties keep first-seen order.
func CategoryBreakdown(records []domain.TransactionRecord) []domain.CategoryRevenue {
	groups := GroupSum(records, func(r domain.TransactionRecord) string { return r.Category })
	out := make([]domain.CategoryRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.CategoryRevenue{
			Category:     g.Key,
			Revenue:      g.Revenue,
			Quantity:     g.Quantity,
			Transactions: g.Transactions,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}

// WeeklyTrend groups by week-start Monday, ascending. Records whose date
// fails to parse were already rejected at ingestion; any stragglers are
// dropped rather than bucketed under an empty key.
func WeeklyTrend(records []domain.TransactionRecord) []domain.WeeklyPoint {
	groups := GroupSum(records, func(r domain.TransactionRecord) string { return WeekStart(r.Date) })
	out := make([]domain.WeeklyPoint, 0, len(groups))
	for _, g := range groups {
		if g.Key == "" {
			continue
		}
		out = append(out, domain.WeeklyPoint{
			WeekStart:    g.Key,
			Revenue:      g.Revenue,
			Transactions: g.Transactions,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// ItemRollup groups by item name, sorted by revenue descending with
// first-seen ties. Each row carries the category of the first record seen
// for that name.
func ItemRollup(records []domain.TransactionRecord) []domain.ItemTotal {
	groups := GroupSum(records, func(r domain.TransactionRecord) string { return r.Name })
	out := make([]domain.ItemTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.ItemTotal{
			Name:         g.Key,
			Category:     g.Category,
			Revenue:      g.Revenue,
			Quantity:     g.Quantity,
			Transactions: g.Transactions,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}

// TopItems truncates a rollup for chart display.
func TopItems(rollup []domain.ItemTotal, n int) []domain.ItemTotal {
	if n <= 0 {
		n = DefaultTopItems
	}
	if len(rollup) > n {
		rollup = rollup[:n]
	}
	return rollup
}

var nameFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName folds an item name for allowlist matching: trim, lowercase
// and strip diacritics (NFD decomposition, drop combining marks). Both the
// rollup names and the allowlist go through this, so "Café Latté" matches
// "cafe latte".
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	folded, _, err := transform.String(nameFolder, name)
	if err != nil {
		return name
	}
	return folded
}

// SpecialtySubset filters a rollup to the rows whose normalized name is on
// the allowlist, preserving rollup order.
func SpecialtySubset(rollup []domain.ItemTotal, allowlist []string) []domain.ItemTotal {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, name := range allowlist {
		allowed[NormalizeName(name)] = struct{}{}
	}
	out := make([]domain.ItemTotal, 0)
	for _, item := range rollup {
		if _, ok := allowed[NormalizeName(item.Name)]; ok {
			out = append(out, item)
		}
	}
	return out
}
