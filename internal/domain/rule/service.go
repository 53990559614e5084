package rule

import (
	"context"
)

// RuleService defines business logic for the access rule set.
type RuleService interface {
	// ListRules retrieves the sanitized stored rule set.
	ListRules(ctx context.Context) ([]AccessRule, error)

	// SaveRules sanitizes and atomically replaces the rule set.
	// Rejects sets assigning one subject group to multiple rules.
	SaveRules(ctx context.Context, req SaveRulesRequest) ([]AccessRule, error)

	// EffectiveForUser resolves the thresholds that apply to a user.
	EffectiveForUser(ctx context.Context, userID string) (EffectiveRulesResponse, error)
}
