package rule

import (
	"context"
)

// AccessService answers who may oversee whom, derived from the rule
// set's HR/user group pairs.
type AccessService interface {
	// IsHR reports whether the user belongs to any rule's HR groups.
	IsHR(ctx context.Context, userID string) (bool, error)

	// AccessibleUsers returns the members of all user groups the HR
	// user's rules cover, deduplicated.
	AccessibleUsers(ctx context.Context, hrUserID string) ([]string, error)

	// CanAccessUser reports whether hrUserID may view targetID's data.
	CanAccessUser(ctx context.Context, hrUserID, targetID string) (bool, error)
}
