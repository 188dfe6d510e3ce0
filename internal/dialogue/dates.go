package dialogue

import (
	"sort"
	"time"
)

// Inspections run on Mondays, Wednesdays and Saturdays.
var inspectionWeekdays = []time.Weekday{time.Monday, time.Wednesday, time.Saturday}

// DateOptionFormat is how offered dates are rendered and later matched
// against the user's selection.
const DateOptionFormat = "Monday, Jan 2"

// InspectionDates returns the next three inspection days after now,
// soonest first. A weekday already reached this week rolls over to the
// next one, so every option leaves time to arrange the visit.
func InspectionDates(now time.Time) []string {
	dates := make([]time.Time, 0, len(inspectionWeekdays))
	for _, wd := range inspectionWeekdays {
		days := (int(wd) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		dates = append(dates, now.AddDate(0, 0, days))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(DateOptionFormat)
	}
	return out
}
