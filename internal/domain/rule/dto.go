package rule

import (
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/validator"
)

// ThresholdsInput carries client-supplied limits. Absent fields fall
// back to the defaults, present fields are clamped into range.
type ThresholdsInput struct {
	MaxHours          *float64 `json:"max_hours,omitempty"`
	BreakShortMinutes *int     `json:"break_short_minutes,omitempty"`
	BreakShortHours   *float64 `json:"break_short_hours,omitempty"`
	BreakLongMinutes  *int     `json:"break_long_minutes,omitempty"`
	BreakLongHours    *float64 `json:"break_long_hours,omitempty"`
	Priority          *int     `json:"priority,omitempty"`
}

// Normalize resolves defaults and clamps every field into its range.
func (t ThresholdsInput) Normalize() Thresholds {
	out := DefaultThresholds()
	if t.MaxHours != nil {
		out.MaxHours = validator.ClampFloat(*t.MaxHours, 0, MaxHoursCap)
	}
	if t.BreakShortMinutes != nil {
		out.BreakShortMinutes = validator.ClampInt(*t.BreakShortMinutes, 0, MaxBreakMin)
	}
	if t.BreakShortHours != nil {
		out.BreakShortHours = validator.ClampFloat(*t.BreakShortHours, 0, MaxHoursCap)
	}
	if t.BreakLongMinutes != nil {
		out.BreakLongMinutes = validator.ClampInt(*t.BreakLongMinutes, 0, MaxBreakMin)
	}
	if t.BreakLongHours != nil {
		out.BreakLongHours = validator.ClampFloat(*t.BreakLongHours, 0, MaxHoursCap)
	}
	if t.Priority != nil {
		out.Priority = validator.ClampInt(*t.Priority, MinPriority, MaxPriority)
	}
	return out
}

// RuleInput is one rule as submitted by the admin UI.
type RuleInput struct {
	ID         string          `json:"id"`
	HRGroups   []string        `json:"hr_groups"`
	UserGroups []string        `json:"user_groups"`
	Thresholds ThresholdsInput `json:"thresholds"`
}

type SaveRulesRequest struct {
	Rules []RuleInput `json:"rules"`
}

func (r *SaveRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	for i, in := range r.Rules {
		for _, g := range in.HRGroups {
			if validator.IsEmpty(g) {
				errs = append(errs, validator.ValidationError{
					Field:   "rules[" + validator.Itoa(i) + "].hr_groups",
					Message: "group names must not be empty",
				})
				break
			}
		}
		for _, g := range in.UserGroups {
			if validator.IsEmpty(g) {
				errs = append(errs, validator.ValidationError{
					Field:   "rules[" + validator.Itoa(i) + "].user_groups",
					Message: "group names must not be empty",
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EffectiveRulesResponse is the resolved threshold set for one user.
type EffectiveRulesResponse struct {
	UserID        string     `json:"user_id"`
	Thresholds    Thresholds `json:"thresholds"`
	MatchedRuleID *string    `json:"matched_rule_id,omitempty"`
}
