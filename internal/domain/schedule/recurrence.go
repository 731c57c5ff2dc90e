package schedule

import (
	"sort"
	"time"
)

// ExpandMonth lists every calendar date in the target month covered by the
// window, ascending, at midnight in loc. Recurring windows match on weekday
// and, when set, on the fixed 7-day week bucket; specific windows contribute
// their date when it falls inside the month. A month with no match yields an
// empty slice, which is a valid outcome rather than an error.
//
// The window must be valid; MonthDates handles validation and skipping.
func (w *Window) ExpandMonth(year int, month time.Month, loc *time.Location) []time.Time {
	if w.Kind == KindSpecific {
		if w.Date.Year() == year && w.Date.Month() == month {
			d := *w.Date
			return []time.Time{time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)}
		}
		return nil
	}

	var dates []time.Time
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		if int(day.Weekday()) != *w.DayOfWeek {
			continue
		}
		if w.WeekOfMonth != nil && weekOfMonth(day.Day()) != *w.WeekOfMonth {
			continue
		}
		dates = append(dates, day)
	}
	return dates
}

// MonthDates merges the expansions of all windows into a single ascending,
// deduplicated list of offered dates. A date either has availability or it
// does not, regardless of how many windows cover it. Malformed windows are
// skipped and reported as warnings.
func MonthDates(windows []*Window, year int, month time.Month, loc *time.Location) ([]time.Time, []Warning) {
	var warnings []Warning
	seen := make(map[time.Time]struct{})

	for _, w := range windows {
		if err := w.Validate(); err != nil {
			warnings = append(warnings, warn(w, err))
			continue
		}
		for _, d := range w.ExpandMonth(year, month, loc) {
			seen[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, warnings
}

// WindowsForDay filters the windows that cover a single calendar day,
// skipping malformed ones with warnings.
func WindowsForDay(windows []*Window, day time.Time) ([]*Window, []Warning) {
	var (
		applicable []*Window
		warnings   []Warning
	)
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			warnings = append(warnings, warn(w, err))
			continue
		}
		if w.AppliesTo(day) {
			applicable = append(applicable, w)
		}
	}
	return applicable, warnings
}
