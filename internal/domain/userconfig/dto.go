package userconfig

import (
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/validator"
)

// UpdateConfigRequest carries a partial config update. Absent fields
// keep their current values.
type UpdateConfigRequest struct {
	UserID      string  `json:"-"`
	WorkMinutes *int    `json:"work_minutes,omitempty"`
	State       *string `json:"state,omitempty"`

	MailNoEntryEnabled    *bool `json:"mail_no_entry_enabled,omitempty"`
	MailNoEntryDays       *int  `json:"mail_no_entry_days,omitempty"`
	MailOvertimeEnabled   *bool `json:"mail_overtime_enabled,omitempty"`
	MailOvertimeThreshold *int  `json:"mail_overtime_threshold,omitempty"`
	MailNegativeEnabled   *bool `json:"mail_negative_enabled,omitempty"`
	MailNegativeThreshold *int  `json:"mail_negative_threshold,omitempty"`

	WarnNoEntryDays       *int `json:"warn_no_entry_days,omitempty"`
	WarnOvertimeThreshold *int `json:"warn_overtime_threshold,omitempty"`
	WarnNegativeThreshold *int `json:"warn_negative_threshold,omitempty"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.State != nil && len(*r.State) > 10 {
		errs = append(errs, validator.ValidationError{
			Field:   "state",
			Message: "state code must not exceed 10 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApplyTo merges the request into an existing config, clamping every
// numeric setting into its range.
func (r *UpdateConfigRequest) ApplyTo(c UserConfig) UserConfig {
	if r.WorkMinutes != nil {
		c.WorkMinutes = *r.WorkMinutes
		if c.WorkMinutes <= 0 {
			c.WorkMinutes = DefaultWorkMinutes
		}
	}
	if r.State != nil {
		if *r.State == "" {
			c.State = nil
		} else {
			s := *r.State
			c.State = &s
		}
	}

	if r.MailNoEntryEnabled != nil {
		c.MailNoEntryEnabled = *r.MailNoEntryEnabled
	}
	if r.MailNoEntryDays != nil {
		c.MailNoEntryDays = validator.ClampInt(*r.MailNoEntryDays, MinNoEntryDays, MaxNoEntryDays)
	}
	if r.MailOvertimeEnabled != nil {
		c.MailOvertimeEnabled = *r.MailOvertimeEnabled
	}
	if r.MailOvertimeThreshold != nil {
		c.MailOvertimeThreshold = maxInt(*r.MailOvertimeThreshold, 0)
	}
	if r.MailNegativeEnabled != nil {
		c.MailNegativeEnabled = *r.MailNegativeEnabled
	}
	if r.MailNegativeThreshold != nil {
		c.MailNegativeThreshold = maxInt(*r.MailNegativeThreshold, 0)
	}

	if r.WarnNoEntryDays != nil {
		c.WarnNoEntryDays = validator.ClampInt(*r.WarnNoEntryDays, MinNoEntryDays, MaxNoEntryDays)
	}
	if r.WarnOvertimeThreshold != nil {
		c.WarnOvertimeThreshold = maxInt(*r.WarnOvertimeThreshold, 0)
	}
	if r.WarnNegativeThreshold != nil {
		c.WarnNegativeThreshold = maxInt(*r.WarnNegativeThreshold, 0)
	}

	return c
}

func maxInt(v, min int) int {
	if v < min {
		return min
	}
	return v
}

type ConfigResponse struct {
	UserID      string  `json:"user_id"`
	WorkMinutes int     `json:"work_minutes"`
	State       *string `json:"state,omitempty"`

	MailNoEntryEnabled    bool `json:"mail_no_entry_enabled"`
	MailNoEntryDays       int  `json:"mail_no_entry_days"`
	MailOvertimeEnabled   bool `json:"mail_overtime_enabled"`
	MailOvertimeThreshold int  `json:"mail_overtime_threshold"`
	MailNegativeEnabled   bool `json:"mail_negative_enabled"`
	MailNegativeThreshold int  `json:"mail_negative_threshold"`

	WarnNoEntryDays       int `json:"warn_no_entry_days"`
	WarnOvertimeThreshold int `json:"warn_overtime_threshold"`
	WarnNegativeThreshold int `json:"warn_negative_threshold"`
}

func ToResponse(c UserConfig) ConfigResponse {
	return ConfigResponse{
		UserID:                c.UserID,
		WorkMinutes:           c.WorkMinutes,
		State:                 c.State,
		MailNoEntryEnabled:    c.MailNoEntryEnabled,
		MailNoEntryDays:       c.MailNoEntryDays,
		MailOvertimeEnabled:   c.MailOvertimeEnabled,
		MailOvertimeThreshold: c.MailOvertimeThreshold,
		MailNegativeEnabled:   c.MailNegativeEnabled,
		MailNegativeThreshold: c.MailNegativeThreshold,
		WarnNoEntryDays:       c.WarnNoEntryDays,
		WarnOvertimeThreshold: c.WarnOvertimeThreshold,
		WarnNegativeThreshold: c.WarnNegativeThreshold,
	}
}
