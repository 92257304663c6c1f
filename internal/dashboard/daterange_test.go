package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rollhouse/salesdash/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestResolvePresets(t *testing.T) {
	t.Parallel()

	now := date(2025, 6, 15)

	cases := []struct {
		id    string
		start string
		end   string
	}{
		{PresetYTD, "2025-01-01", "2025-06-15"},
		{PresetLast30, "2025-05-17", "2025-06-15"},
		{PresetLast90, "2025-03-18", "2025-06-15"},
		{PresetLast12Mo, "2024-06-15", "2025-06-15"},
		{PresetPriorYear, "2024-01-01", "2024-12-31"},
	}
	for _, tc := range cases {
		r, ok := Resolve(tc.id, now)
		require.True(t, ok, tc.id)
		require.NotNil(t, r, tc.id)
		require.Equal(t, tc.start, r.Start, tc.id)
		require.Equal(t, tc.end, r.End, tc.id)
	}

	r, ok := Resolve(PresetAll, now)
	require.True(t, ok)
	require.Nil(t, r)

	_, ok = Resolve("fortnight", now)
	require.False(t, ok)
}

func TestDetectRoundTrip(t *testing.T) {
	t.Parallel()

	now := date(2025, 6, 15)
	for _, p := range Presets() {
		require.Equal(t, p.ID, Detect(p.Resolve(now), now))
	}
}

func TestDetectNilIsAllTime(t *testing.T) {
	t.Parallel()

	require.Equal(t, PresetAll, Detect(nil, date(2025, 6, 15)))
}

func TestDetectFallsBackToCustom(t *testing.T) {
	t.Parallel()

	r := &domain.DateRange{Start: "2025-02-03", End: "2025-02-14"}
	require.Equal(t, PresetCustom, Detect(r, date(2025, 6, 15)))
}

// On January 1st the YTD range collapses to a single day. YTD is declared
// first, so it wins the reverse lookup.
func TestDetectYTDOnJanuaryFirst(t *testing.T) {
	t.Parallel()

	now := date(2025, 1, 1)
	r := &domain.DateRange{Start: "2025-01-01", End: "2025-01-01"}
	require.Equal(t, PresetYTD, Detect(r, now))
}

func TestPresetOrderIsFixed(t *testing.T) {
	t.Parallel()

	var ids []string
	for _, p := range Presets() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{PresetYTD, PresetLast30, PresetLast90, PresetLast12Mo, PresetPriorYear, PresetAll}, ids)
}
