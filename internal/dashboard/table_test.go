package dashboard

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rollhouse/salesdash/internal/domain"
)

func tableRows(n int) []domain.ItemTotal {
	rows := make([]domain.ItemTotal, n)
	for i := range rows {
		rows[i] = domain.ItemTotal{
			Name:     fmt.Sprintf("Item %02d", i),
			Category: "Cat " + strconv.Itoa(i%3),
			Revenue:  decimal.NewFromInt(int64(i)),
			Quantity: n - i,
		}
	}
	return rows
}

func TestDefaultStateDirections(t *testing.T) {
	t.Parallel()

	require.False(t, DefaultState(SortName).Descending)
	require.False(t, DefaultState(SortCategory).Descending)
	require.True(t, DefaultState(SortRevenue).Descending)
	require.True(t, DefaultState(SortQuantity).Descending)
}

func TestSelectTogglesSameColumn(t *testing.T) {
	t.Parallel()

	s := DefaultState(SortRevenue).WithPage(2)
	s = s.Select(SortRevenue)
	require.Equal(t, SortRevenue, s.Column)
	require.False(t, s.Descending)
	require.Equal(t, 0, s.Page, "sort change resets to page 0")

	s = s.Select(SortRevenue)
	require.True(t, s.Descending)
}

func TestSelectNewColumnUsesTypeDefault(t *testing.T) {
	t.Parallel()

	s := NewTableState().WithPage(3)
	s = s.Select(SortName)
	require.Equal(t, SortName, s.Column)
	require.False(t, s.Descending)
	require.Equal(t, 0, s.Page)

	s = s.Select(SortQuantity)
	require.True(t, s.Descending)
}

func TestPaginateSortsAndSlices(t *testing.T) {
	t.Parallel()

	rows := tableRows(30)

	page := Paginate(rows, DefaultState(SortRevenue))
	require.Equal(t, 25, page.PageSize)
	require.Equal(t, 30, page.TotalRows)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Rows, 25)
	require.Equal(t, "Item 29", page.Rows[0].Name, "revenue descending")

	second := Paginate(rows, DefaultState(SortRevenue).WithPage(1))
	require.Len(t, second.Rows, 5)
	require.Equal(t, "Item 04", second.Rows[0].Name)
}

func TestPaginateStringAscending(t *testing.T) {
	t.Parallel()

	page := Paginate(tableRows(30), DefaultState(SortName))
	require.Equal(t, "Item 00", page.Rows[0].Name)
}

func TestPaginateClampsPage(t *testing.T) {
	t.Parallel()

	page := Paginate(tableRows(30), DefaultState(SortRevenue).WithPage(99))
	require.Equal(t, 1, page.Page)
	require.Len(t, page.Rows, 5)
}

func TestPaginateEmpty(t *testing.T) {
	t.Parallel()

	page := Paginate(nil, NewTableState())
	require.Equal(t, 0, page.Page)
	require.Equal(t, 0, page.TotalPages)
	require.Empty(t, page.Rows)
}

func TestPaginateDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	rows := tableRows(10)
	first := rows[0].Name
	Paginate(rows, DefaultState(SortName).Select(SortName)) // descending
	require.Equal(t, first, rows[0].Name)
}

func TestValidSortColumn(t *testing.T) {
	t.Parallel()

	require.True(t, ValidSortColumn("name"))
	require.True(t, ValidSortColumn("revenue"))
	require.False(t, ValidSortColumn("price"))
}
