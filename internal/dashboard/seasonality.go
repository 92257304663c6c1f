package dashboard

import (
	"sort"
	"strconv"

	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/shopspring/decimal"
)

// Seasonality buckets weekly revenue by ISO (year, week-of-year<=52) for
// year-over-year overlay charts. Weeks within each year come back sorted;
// Years lists the contributing ISO years ascending.
func Seasonality(records []domain.TransactionRecord) domain.Seasonality {
	out := domain.Seasonality{
		ByYearWeek:   make(map[string][]domain.SeasonalityPoint),
		TotalRevenue: decimal.Zero,
	}

	type bucket struct{ year, week int }
	sums := make(map[bucket]decimal.Decimal)
	var minDate, maxDate string

	for _, w := range WeeklyTrend(records) {
		year, week, ok := WeekOfYear(w.WeekStart)
		if !ok {
			continue
		}
		b := bucket{year, week}
		sum, ok := sums[b]
		if !ok {
			sum = decimal.Zero
		}
		sums[b] = sum.Add(w.Revenue)
	}

	for _, r := range records {
		out.TotalRevenue = out.TotalRevenue.Add(r.Revenue)
		if minDate == "" || r.Date < minDate {
			minDate = r.Date
		}
		if r.Date > maxDate {
			maxDate = r.Date
		}
	}
	if minDate != "" {
		out.DateRange = &domain.DateRange{Start: minDate, End: maxDate}
	}

	yearSet := make(map[int]struct{})
	for b, rev := range sums {
		yearSet[b.year] = struct{}{}
		key := strconv.Itoa(b.year)
		out.ByYearWeek[key] = append(out.ByYearWeek[key], domain.SeasonalityPoint{
			Week:    b.week,
			Revenue: rev,
		})
	}
	for _, points := range out.ByYearWeek {
		sort.Slice(points, func(i, j int) bool { return points[i].Week < points[j].Week })
	}
	for y := range yearSet {
		out.Years = append(out.Years, y)
	}
	sort.Ints(out.Years)
	return out
}
