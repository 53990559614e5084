package rule

// Violation codes attached to entries that break a working-time rule.
const (
	ViolationAboveMaximumTime      = "AboveMaximumTime"
	ViolationBreakTooShort         = "BreakTooShort"
	ViolationSundayWorkNotAllowed  = "SundayWorkNotAllowed"
	ViolationHolidayWorkNotAllowed = "HolidayWorkNotAllowed"
)

// Thresholds are the working-time limits a rule applies to its subject
// groups. Break tiers: after BreakLongHours of work BreakLongMinutes of
// break are required, otherwise after BreakShortHours BreakShortMinutes.
type Thresholds struct {
	MaxHours          float64 `json:"max_hours"`
	BreakShortMinutes int     `json:"break_short_minutes"`
	BreakShortHours   float64 `json:"break_short_hours"`
	BreakLongMinutes  int     `json:"break_long_minutes"`
	BreakLongHours    float64 `json:"break_long_hours"`
	Priority          int     `json:"priority"`
}

// Threshold bounds and defaults.
const (
	DefaultMaxHours          = 10.0
	DefaultBreakShortMinutes = 30
	DefaultBreakShortHours   = 6.0
	DefaultBreakLongMinutes  = 45
	DefaultBreakLongHours    = 9.0
	DefaultPriority          = 1

	MinPriority = 0
	MaxPriority = 9999
	MaxBreakMin = 600
	MaxHoursCap = 24.0
)

// DefaultThresholds apply to users no rule matches.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxHours:          DefaultMaxHours,
		BreakShortMinutes: DefaultBreakShortMinutes,
		BreakShortHours:   DefaultBreakShortHours,
		BreakLongMinutes:  DefaultBreakLongMinutes,
		BreakLongHours:    DefaultBreakLongHours,
		Priority:          DefaultPriority,
	}
}

// AccessRule grants the HRGroups oversight over the UserGroups and binds
// the thresholds that apply to members of the UserGroups.
type AccessRule struct {
	ID         string     `json:"id"`
	HRGroups   []string   `json:"hr_groups"`
	UserGroups []string   `json:"user_groups"`
	Thresholds Thresholds `json:"thresholds"`
}
