package dashboard

import (
	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/shopspring/decimal"
)

// Group is one accumulator of the generic fold: a grouping key plus the
// summed numeric fields of every record that produced that key.
type Group struct {
	Key          string
	Category     string
	Revenue      decimal.Decimal
	Quantity     int
	Transactions int
}

// GroupSum folds records into groups keyed by keyFn, summing revenue,
// quantity and transactions. Groups come back in first-seen order so
// callers sorting with a stable sort get deterministic ties. Category is
// the first contributing record's category.
//
// The fold knows nothing about what the key means; every view builder
// reuses it with its own key function.
func GroupSum(records []domain.TransactionRecord, keyFn func(domain.TransactionRecord) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, r := range records {
		key := keyFn(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:      key,
				Category: r.Category,
				Revenue:  decimal.Zero,
			})
		}
		g := &groups[i]
		g.Revenue = g.Revenue.Add(r.Revenue)
		g.Quantity += r.Quantity
		g.Transactions += r.Transactions
	}
	return groups
}
