package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rollhouse/salesdash/internal/cache"
	"github.com/rollhouse/salesdash/internal/dashboard"
	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/rollhouse/salesdash/internal/snapshot"
)

// ErrInvalidRange rejects a custom date range whose start is after its
// end before it can reach the engine.
var ErrInvalidRange = errors.New("invalid date range: start is after end")

// DashboardService orchestrates the engine over the loaded snapshot
// store, with optional memoization of computed dashboards.
type DashboardService struct {
	store *snapshot.Store
	cache cache.DashboardCache
}

func NewDashboardService(store *snapshot.Store, cacheImpl cache.DashboardCache) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{store: store, cache: cacheImpl}
}

// LoadStatus reports whether the snapshots behind the service loaded
// cleanly. A failed load degrades to empty data, not an error.
type LoadStatus struct {
	Records int      `json:"records"`
	Errors  []string `json:"errors,omitempty"`
	Healthy bool     `json:"healthy"`
}

func (s *DashboardService) Status() LoadStatus {
	return LoadStatus{
		Records: len(s.store.Records()),
		Errors:  s.store.LoadErrors(),
		Healthy: s.store.Healthy(),
	}
}

func validateFilters(f domain.Filters) error {
	if f.DateRange != nil && !f.DateRange.Valid() {
		return ErrInvalidRange
	}
	return nil
}

// GetDashboard computes the four views for one Filters value. The views
// are independent, so they run in parallel over the same filtered slice.
func (s *DashboardService) GetDashboard(ctx context.Context, f domain.Filters) (*domain.Dashboard, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}

	fingerprint := s.store.Fingerprint()
	if cached, ok, err := s.cache.Get(ctx, fingerprint, f); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	} else if ok {
		return cached, nil
	}

	filtered := dashboard.Apply(s.store.Records(), f)

	var result domain.Dashboard
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Summary = dashboard.Summarize(filtered)
		return nil
	})
	g.Go(func() error {
		result.Categories = dashboard.CategoryBreakdown(filtered)
		return nil
	})
	g.Go(func() error {
		result.Weekly = dashboard.WeeklyTrend(filtered)
		return nil
	})
	g.Go(func() error {
		result.TopItems = dashboard.TopItems(dashboard.ItemRollup(filtered), dashboard.DefaultTopItems)
		return nil
	})
	_ = g.Wait()

	if err := s.cache.Set(ctx, fingerprint, f, &result); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}
	return &result, nil
}

// GetItems returns one page of the sorted item table for the filtered set.
func (s *DashboardService) GetItems(ctx context.Context, f domain.Filters, state dashboard.TableState) (dashboard.TablePage, error) {
	if err := validateFilters(f); err != nil {
		return dashboard.TablePage{}, err
	}
	rollup := dashboard.ItemRollup(dashboard.Apply(s.store.Records(), f))
	return dashboard.Paginate(rollup, state), nil
}

// GetSpecialty returns the rollup restricted to the specialty allowlist.
func (s *DashboardService) GetSpecialty(ctx context.Context, f domain.Filters) ([]domain.ItemTotal, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	rollup := dashboard.ItemRollup(dashboard.Apply(s.store.Records(), f))
	return dashboard.SpecialtySubset(rollup, s.store.Specialty()), nil
}

// GetSeasonality buckets a department's full history into ISO week-of-year
// buckets for year-over-year comparison.
func (s *DashboardService) GetSeasonality(department string) domain.Seasonality {
	filtered := dashboard.Apply(s.store.Records(), domain.Filters{Department: department})
	return dashboard.Seasonality(filtered)
}

// Forecast returns the externally computed forecast series, untouched.
func (s *DashboardService) Forecast() *domain.ForecastSnapshot {
	return s.store.Forecast()
}

// SummarySnapshot returns the precomputed department summary, untouched.
func (s *DashboardService) SummarySnapshot() *domain.SummarySnapshot {
	return s.store.Summary()
}
