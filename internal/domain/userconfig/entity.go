package userconfig

import (
	"time"
)

// UserConfig holds per-user working-time settings: the daily target,
// the holiday region, and the HR mail/warning thresholds that apply
// when this user reviews others.
type UserConfig struct {
	UserID      string
	WorkMinutes int     // daily target
	State       *string // holiday region code, e.g. "BW"

	// Mail notification settings (user acts as HR reviewer)
	MailNoEntryEnabled    bool
	MailNoEntryDays       int
	MailOvertimeEnabled   bool
	MailOvertimeThreshold int // minutes
	MailNegativeEnabled   bool
	MailNegativeThreshold int // minutes

	// Warning thresholds shown in the HR user list
	WarnNoEntryDays       int
	WarnOvertimeThreshold int
	WarnNegativeThreshold int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Defaults and bounds for the numeric settings.
const (
	DefaultWorkMinutes       = 480
	DefaultNoEntryDays       = 14
	DefaultOvertimeThreshold = 600
	DefaultNegativeThreshold = 600

	MinNoEntryDays = 1
	MaxNoEntryDays = 365
)

// DefaultConfig is the config of a user who never saved one.
func DefaultConfig(userID string) UserConfig {
	return UserConfig{
		UserID:                userID,
		WorkMinutes:           DefaultWorkMinutes,
		MailNoEntryDays:       DefaultNoEntryDays,
		MailOvertimeThreshold: DefaultOvertimeThreshold,
		MailNegativeThreshold: DefaultNegativeThreshold,
		WarnNoEntryDays:       DefaultNoEntryDays,
		WarnOvertimeThreshold: DefaultOvertimeThreshold,
		WarnNegativeThreshold: DefaultNegativeThreshold,
	}
}

// MailEnabled reports whether any mail notification flag is on.
func (c UserConfig) MailEnabled() bool {
	return c.MailNoEntryEnabled || c.MailOvertimeEnabled || c.MailNegativeEnabled
}
