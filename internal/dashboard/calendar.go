package dashboard

import "time"

const dateLayout = "2006-01-02"

// maxWeekOfYear caps the seasonality buckets: ISO week 53 folds into 52 so
// every year overlays on the same axis.
const maxWeekOfYear = 52

// WeekStart returns the ISO date of the Monday beginning the week that
// contains date. A Sunday belongs to the week ending that day, so its
// week start is the Monday six days prior. Rolls correctly across month
// and year boundaries. Returns "" for a non-ISO date.
func WeekStart(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	dow := int(t.Weekday()) // Sunday = 0
	shift := 1 - dow
	if dow == 0 {
		shift = -6
	}
	return t.AddDate(0, 0, shift).Format(dateLayout)
}

// WeekOfYear returns the ISO (year, week) pair for a week-start date, with
// the week clamped to 52. The pair identifies the seasonality bucket a
// week contributes to. ok is false for a non-ISO date.
func WeekOfYear(weekStart string) (year, week int, ok bool) {
	t, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return 0, 0, false
	}
	year, week = t.ISOWeek()
	if week > maxWeekOfYear {
		week = maxWeekOfYear
	}
	return year, week, true
}
