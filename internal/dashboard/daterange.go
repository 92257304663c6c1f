package dashboard

import (
	"time"

	"github.com/rollhouse/salesdash/internal/domain"
)

// Preset ids. PresetCustom is never in the preset list; Detect falls back
// to it for any non-nil range that matches no preset.
const (
	PresetYTD       = "ytd"
	PresetLast30    = "30d"
	PresetLast90    = "90d"
	PresetLast12Mo  = "12m"
	PresetPriorYear = "prevyear"
	PresetAll       = "all"
	PresetCustom    = "custom"
)

// Preset is a named shortcut for a common date range. Resolve is a pure
// function of "now"; a nil result means all-time.
type Preset struct {
	ID      string
	Label   string
	Resolve func(now time.Time) *domain.DateRange
}

// Presets returns the preset list in declared order. Detect tests them in
// this order, so order is part of the contract.
func Presets() []Preset {
	return []Preset{
		{ID: PresetYTD, Label: "Year to Date", Resolve: func(now time.Time) *domain.DateRange {
			return &domain.DateRange{
				Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout),
				End:   now.Format(dateLayout),
			}
		}},
		{ID: PresetLast30, Label: "Last 30 Days", Resolve: lastDays(30)},
		{ID: PresetLast90, Label: "Last 90 Days", Resolve: lastDays(90)},
		{ID: PresetLast12Mo, Label: "Last 12 Months", Resolve: func(now time.Time) *domain.DateRange {
			return &domain.DateRange{
				Start: now.AddDate(0, -12, 0).Format(dateLayout),
				End:   now.Format(dateLayout),
			}
		}},
		{ID: PresetPriorYear, Label: "Last Year", Resolve: func(now time.Time) *domain.DateRange {
			y := now.Year() - 1
			return &domain.DateRange{
				Start: time.Date(y, 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout),
				End:   time.Date(y, 12, 31, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			}
		}},
		{ID: PresetAll, Label: "All Time", Resolve: func(time.Time) *domain.DateRange {
			return nil
		}},
	}
}

// lastDays builds a closed interval of exactly n days ending today.
func lastDays(n int) func(time.Time) *domain.DateRange {
	return func(now time.Time) *domain.DateRange {
		return &domain.DateRange{
			Start: now.AddDate(0, 0, -(n - 1)).Format(dateLayout),
			End:   now.Format(dateLayout),
		}
	}
}

// Resolve maps a preset id to its concrete range at "now". A nil range
// with ok=true means all-time; ok=false means the id is not a preset.
func Resolve(id string, now time.Time) (*domain.DateRange, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p.Resolve(now), true
		}
	}
	return nil, false
}

// Detect performs the reverse lookup: the first preset whose resolved
// range exactly equals r wins. A nil range is always all-time; a non-nil
// range matching nothing is custom.
func Detect(r *domain.DateRange, now time.Time) string {
	if r == nil {
		return PresetAll
	}
	for _, p := range Presets() {
		resolved := p.Resolve(now)
		if resolved != nil && resolved.Start == r.Start && resolved.End == r.End {
			return p.ID
		}
	}
	return PresetCustom
}
