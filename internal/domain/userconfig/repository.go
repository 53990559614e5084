package userconfig

import (
	"context"
)

// UserConfigRepository defines data access methods for per-user settings.
type UserConfigRepository interface {
	// GetByUser retrieves the stored config, nil if the user never
	// saved one.
	GetByUser(ctx context.Context, userID string) (*UserConfig, error)

	// GetByUsers retrieves stored configs keyed by user ID. Users
	// without a stored config are absent from the map.
	GetByUsers(ctx context.Context, userIDs []string) (map[string]UserConfig, error)

	// Upsert inserts or updates the config in one statement.
	Upsert(ctx context.Context, c UserConfig) (UserConfig, error)
}
