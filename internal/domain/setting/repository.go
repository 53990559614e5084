package setting

import (
	"context"
)

// Well-known app setting keys.
const (
	KeyAccessRules       = "hr_access_rules"         // JSON rule set
	KeySpecialDaysCheck  = "specialdays_check"       // "1" / "0"
	KeyNotificationForce = "hr_notification_force"   // "1" bypasses the Monday gate
	KeyLastNotifyRun     = "hr_notification_lastrun" // YYYY-MM-DD of last delivery
)

// SettingRepository stores app-wide key/value settings.
type SettingRepository interface {
	// Get retrieves a setting value, fallback when the key is absent.
	Get(ctx context.Context, key, fallback string) (string, error)

	// Set stores a setting value, replacing any previous one.
	Set(ctx context.Context, key, value string) error
}
