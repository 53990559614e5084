package userconfig

import (
	"context"
)

// UserConfigService defines business logic for per-user settings.
type UserConfigService interface {
	// GetConfig retrieves a user's config, defaults when never saved.
	GetConfig(ctx context.Context, userID string) (ConfigResponse, error)

	// UpdateConfig merges a partial update into the stored config.
	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)
}
