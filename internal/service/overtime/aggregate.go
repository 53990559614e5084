package overtime

import (
	"time"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/overtime"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/timeutil"
)

// AggregateEntries computes the overtime balance over a user's entries.
// Only complete entries participate; nil when there are none. Worked
// minutes of every complete entry count toward the total, but entries
// on special days (weekend or holiday) are excluded from the workday
// count when excludeSpecialDays is set, so they accrue pure overtime.
func AggregateEntries(entries []entry.Entry, dailyTarget int, excludeSpecialDays bool, holidays map[string]string) *overtime.Aggregate {
	var agg *overtime.Aggregate

	for _, e := range entries {
		if !e.Complete() {
			continue
		}

		worked := *timeutil.WorkedMinutes(e.StartMin, e.EndMin, e.BreakMinutes)

		if agg == nil {
			agg = &overtime.Aggregate{From: e.WorkDate, To: e.WorkDate}
		}
		if e.WorkDate < agg.From {
			agg.From = e.WorkDate
		}
		if e.WorkDate > agg.To {
			agg.To = e.WorkDate
		}

		agg.TotalMinutes += worked
		if !excludeSpecialDays || !isSpecialDay(e.WorkDate, holidays) {
			agg.Workdays++
		}
	}

	if agg == nil {
		return nil
	}
	agg.OvertimeMinutes = agg.TotalMinutes - agg.Workdays*dailyTarget
	return agg
}

// isSpecialDay reports whether the date is a weekend day or holiday.
// Unparseable dates are not special.
func isSpecialDay(workDate string, holidays map[string]string) bool {
	if _, ok := holidays[workDate]; ok {
		return true
	}
	d, err := time.Parse("2006-01-02", workDate)
	if err != nil {
		return false
	}
	return timeutil.IsWeekend(d)
}
