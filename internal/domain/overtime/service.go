package overtime

import (
	"context"
)

// OvertimeService defines business logic for overtime balances.
type OvertimeService interface {
	// Summary computes a user's overtime balance over all their
	// complete entries.
	Summary(ctx context.Context, userID string) (SummaryResponse, error)

	// HRUserList computes the oversight rows for every user the HR
	// reviewer may access.
	HRUserList(ctx context.Context, hrUserID string) ([]HRUserRowResponse, error)
}
