package dashboard

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rollhouse/salesdash/internal/domain"
)

func TestGroupSumSumsFields(t *testing.T) {
	t.Parallel()

	groups := GroupSum(sampleRecords(), func(r domain.TransactionRecord) string { return r.Department })
	require.Len(t, groups, 3)

	byKey := make(map[string]Group)
	for _, g := range groups {
		byKey[g.Key] = g
	}

	food := byKey["Food"]
	require.True(t, food.Revenue.Equal(decimal.RequireFromString("23.50")), "got %s", food.Revenue)
	require.Equal(t, 4, food.Quantity)
	require.Equal(t, 3, food.Transactions)
}

func TestGroupSumFirstSeenOrder(t *testing.T) {
	t.Parallel()

	groups := GroupSum(sampleRecords(), func(r domain.TransactionRecord) string { return r.Category })
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	require.Equal(t, []string{"Drinks", "Pizza", "Game Bowling", "Draft Beer"}, keys)
}

func TestGroupSumKeepsFirstCategory(t *testing.T) {
	t.Parallel()

	records := []domain.TransactionRecord{
		rec("2025-03-01", "Combo", "Food", "Specials", 1, "10.00", 1),
		rec("2025-03-02", "Combo", "Food", "Bundles", 1, "10.00", 1),
	}
	groups := GroupSum(records, func(r domain.TransactionRecord) string { return r.Name })
	require.Len(t, groups, 1)
	require.Equal(t, "Specials", groups[0].Category)
}

func TestGroupSumDecimalPrecision(t *testing.T) {
	t.Parallel()

	// 1000 additions of 0.01 must sum to exactly 10, with no binary
	// floating point drift.
	records := make([]domain.TransactionRecord, 1000)
	for i := range records {
		records[i] = rec("2025-01-06", fmt.Sprintf("Item %d", i%7), "Food", "Drinks", 1, "0.01", 1)
	}
	groups := GroupSum(records, func(domain.TransactionRecord) string { return "total" })
	require.Len(t, groups, 1)
	require.Equal(t, "10.00", groups[0].Revenue.StringFixed(2))
}

func TestGroupSumEmptyInput(t *testing.T) {
	t.Parallel()

	groups := GroupSum(nil, func(r domain.TransactionRecord) string { return r.Name })
	require.Empty(t, groups)
}
