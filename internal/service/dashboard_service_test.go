package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollhouse/salesdash/internal/dashboard"
	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/rollhouse/salesdash/internal/snapshot"
)

// memoCache is an in-memory DashboardCache for exercising the memoization
// path without a Redis server.
type memoCache struct {
	entries map[string]*domain.Dashboard
	hits    int
	sets    int
}

func newMemoCache() *memoCache {
	return &memoCache{entries: make(map[string]*domain.Dashboard)}
}

func (c *memoCache) key(fingerprint string, f domain.Filters) string {
	key := fingerprint + "|" + f.Department + "|" + f.SearchTerm
	if f.DateRange != nil {
		key += "|" + f.DateRange.Start + ".." + f.DateRange.End
	}
	for _, cat := range f.Categories {
		key += "|" + cat
	}
	return key
}

func (c *memoCache) Get(_ context.Context, fingerprint string, f domain.Filters) (*domain.Dashboard, bool, error) {
	d, ok := c.entries[c.key(fingerprint, f)]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memoCache) Set(_ context.Context, fingerprint string, f domain.Filters, d *domain.Dashboard) error {
	c.sets++
	c.entries[c.key(fingerprint, f)] = d
	return nil
}

func (c *memoCache) InvalidateAll(context.Context) error {
	c.entries = make(map[string]*domain.Dashboard)
	return nil
}

func testStore(t *testing.T) *snapshot.Store {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		snapshot.TransactionsFile: `[
			{"date":"2025-01-06","name":"Cola","department":"Food","category":"Drinks","quantity":2,"revenue":6.00,"transactions":1},
			{"date":"2025-01-07","name":"Cola","department":"Food","category":"Drinks","quantity":1,"revenue":3.00,"transactions":1},
			{"date":"2025-01-07","name":"Margherita","department":"Food","category":"Pizza","quantity":1,"revenue":14.50,"transactions":1},
			{"date":"2025-02-11","name":"Café Latté","department":"Bar","category":"Mocktails","quantity":1,"revenue":7.50,"transactions":1}
		]`,
		snapshot.SummaryFile:   `{"generatedAt":"x","dateRange":["2025-01-06","2025-02-11"],"totalRevenue":31.00,"departments":{},"categoryColors":{}}`,
		snapshot.SpecialtyFile: `["cafe latte"]`,
		snapshot.ForecastFile:  `{"forecasts":{},"generatedAt":"x"}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	src, err := snapshot.NewDirSource(dir)
	require.NoError(t, err)
	store := snapshot.Load(context.Background(), src)
	require.True(t, store.Healthy())
	return store
}

func TestGetDashboardComputesAllViews(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(testStore(t), nil)
	result, err := svc.GetDashboard(context.Background(), domain.Filters{Department: domain.DepartmentAll})
	require.NoError(t, err)

	require.Equal(t, "31.00", result.Summary.TotalRevenue.StringFixed(2))
	require.Equal(t, 3, result.Summary.UniqueItems)
	require.Len(t, result.Categories, 3)
	require.Len(t, result.Weekly, 2)
	require.Len(t, result.TopItems, 3)

	// The category breakdown partitions the KPI total.
	total := result.Categories[0].Revenue
	for _, c := range result.Categories[1:] {
		total = total.Add(c.Revenue)
	}
	require.True(t, total.Equal(result.Summary.TotalRevenue))
}

func TestGetDashboardRejectsInvalidRange(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(testStore(t), nil)
	_, err := svc.GetDashboard(context.Background(), domain.Filters{
		Department: domain.DepartmentAll,
		DateRange:  &domain.DateRange{Start: "2025-02-01", End: "2025-01-01"},
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetDashboardMemoizes(t *testing.T) {
	t.Parallel()

	memo := newMemoCache()
	svc := NewDashboardService(testStore(t), memo)
	filters := domain.Filters{Department: "Food"}

	first, err := svc.GetDashboard(context.Background(), filters)
	require.NoError(t, err)
	require.Equal(t, 1, memo.sets)
	require.Equal(t, 0, memo.hits)

	second, err := svc.GetDashboard(context.Background(), filters)
	require.NoError(t, err)
	require.Equal(t, 1, memo.sets, "second call must not recompute")
	require.Equal(t, 1, memo.hits)
	require.Equal(t, first, second)
}

func TestGetItemsPaginates(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(testStore(t), nil)
	page, err := svc.GetItems(context.Background(), domain.Filters{Department: domain.DepartmentAll}, dashboard.NewTableState())
	require.NoError(t, err)
	require.Equal(t, 3, page.TotalRows)
	require.Equal(t, "Margherita", page.Rows[0].Name, "revenue descending by default")
}

func TestGetSpecialtyUsesNormalizedAllowlist(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(testStore(t), nil)
	items, err := svc.GetSpecialty(context.Background(), domain.Filters{Department: domain.DepartmentAll})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Café Latté", items[0].Name)
}

func TestGetSeasonalityFiltersByDepartment(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(testStore(t), nil)
	s := svc.GetSeasonality("Bar")
	require.Equal(t, []int{2025}, s.Years)
	require.Equal(t, "7.50", s.TotalRevenue.StringFixed(2))
}

func TestStatusReflectsLoad(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(testStore(t), nil)
	status := svc.Status()
	require.True(t, status.Healthy)
	require.Equal(t, 4, status.Records)
	require.Empty(t, status.Errors)
}
