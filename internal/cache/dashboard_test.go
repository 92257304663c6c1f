package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollhouse/salesdash/internal/config"
	"github.com/rollhouse/salesdash/internal/domain"
)

func TestBuildDashboardKeyCanonicalizesCategories(t *testing.T) {
	t.Parallel()

	a := buildDashboardKey("fp", domain.Filters{
		Department: "Food",
		Categories: []string{"Pizza", "Drinks"},
	})
	b := buildDashboardKey("fp", domain.Filters{
		Department: "Food",
		Categories: []string{"Drinks", "Pizza"},
	})
	require.Equal(t, a, b, "category order must not change the key")
}

func TestBuildDashboardKeyDistinguishesFilters(t *testing.T) {
	t.Parallel()

	base := domain.Filters{Department: "Food"}
	keys := map[string]domain.Filters{
		buildDashboardKey("fp", base): base,
	}

	variants := []domain.Filters{
		{Department: "Bar"},
		{Department: "Food", SearchTerm: "cola"},
		{Department: "Food", DateRange: &domain.DateRange{Start: "2025-01-01", End: "2025-06-30"}},
		{Department: "Food", Categories: []string{"Drinks"}},
	}
	for _, f := range variants {
		key := buildDashboardKey("fp", f)
		_, seen := keys[key]
		require.False(t, seen, "filters %+v collided", f)
		keys[key] = f
	}

	// A different record-set fingerprint gets a different key too.
	require.NotEqual(t, buildDashboardKey("fp", base), buildDashboardKey("other", base))
}

func TestBuildDashboardKeyTreatsAllAsNoDepartment(t *testing.T) {
	t.Parallel()

	a := buildDashboardKey("fp", domain.Filters{Department: domain.DepartmentAll})
	b := buildDashboardKey("fp", domain.Filters{})
	require.Equal(t, a, b)
	require.True(t, strings.HasPrefix(a, dashboardKeyPrefix+":"))
}

func TestNewDashboardCacheDisabledIsNoop(t *testing.T) {
	t.Parallel()

	c, err := NewDashboardCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	_, ok, err := c.Get(context.Background(), "fp", domain.Filters{})
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.Set(context.Background(), "fp", domain.Filters{}, &domain.Dashboard{}))
	require.NoError(t, c.InvalidateAll(context.Background()))
}
