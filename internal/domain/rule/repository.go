package rule

import (
	"context"
)

// RuleRepository persists the access rule set. The whole set is stored
// and replaced atomically; rules have no independent lifecycle.
type RuleRepository interface {
	// GetAll retrieves the stored rule set. An empty slice when no
	// rules have been configured.
	GetAll(ctx context.Context) ([]AccessRule, error)

	// ReplaceAll atomically replaces the stored rule set.
	ReplaceAll(ctx context.Context, rules []AccessRule) error
}
