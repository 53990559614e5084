package rule

import (
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/timeutil"
)

// Resolve picks the thresholds for a user from the sanitized rule set:
// the first rule with the strictly lowest priority whose UserGroups
// intersect the user's groups. Returns the defaults and a nil rule ID
// when no rule matches.
func Resolve(rules []AccessRule, userGroups []string) (Thresholds, *string) {
	var matched *AccessRule
	for i := range rules {
		r := &rules[i]
		if !intersects(r.UserGroups, userGroups) {
			continue
		}
		if matched == nil || r.Thresholds.Priority < matched.Thresholds.Priority {
			matched = r
		}
	}
	if matched == nil {
		return DefaultThresholds(), nil
	}
	id := matched.ID
	return matched.Thresholds, &id
}

// Check evaluates one entry span against the thresholds. Entries with a
// missing boundary are never flagged. The two break tiers are exclusive:
// a span past the long tier is only checked against the long break.
func (t Thresholds) Check(start, end *int, breakMinutes int, isSunday, isHoliday bool) []string {
	if start == nil || end == nil {
		return nil
	}

	worked := *timeutil.WorkedMinutes(start, end, breakMinutes)

	var violations []string
	if float64(worked) > t.MaxHours*60 {
		violations = append(violations, ViolationAboveMaximumTime)
	}

	if float64(worked) > t.BreakLongHours*60 {
		if breakMinutes < t.BreakLongMinutes {
			violations = append(violations, ViolationBreakTooShort)
		}
	} else if float64(worked) > t.BreakShortHours*60 {
		if breakMinutes < t.BreakShortMinutes {
			violations = append(violations, ViolationBreakTooShort)
		}
	}

	if isSunday {
		violations = append(violations, ViolationSundayWorkNotAllowed)
	}
	if isHoliday {
		violations = append(violations, ViolationHolidayWorkNotAllowed)
	}

	return violations
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
