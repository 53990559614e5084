package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
)

// ruleRepository stores the whole rule set as one JSON app setting, so
// replacing it is a single atomic upsert.
type ruleRepository struct {
	settings setting.SettingRepository
}

func NewRuleRepository(settings setting.SettingRepository) rule.RuleRepository {
	return &ruleRepository{settings: settings}
}

// GetAll implements rule.RuleRepository.
func (r *ruleRepository) GetAll(ctx context.Context) ([]rule.AccessRule, error) {
	raw, err := r.settings.Get(ctx, setting.KeyAccessRules, "[]")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []rule.AccessRule{}, nil
	}

	var rules []rule.AccessRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, fmt.Errorf("%w: %v", rule.ErrInvalidRules, err)
	}
	return rules, nil
}

// ReplaceAll implements rule.RuleRepository.
func (r *ruleRepository) ReplaceAll(ctx context.Context, rules []rule.AccessRule) error {
	if rules == nil {
		rules = []rule.AccessRule{}
	}

	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode access rules: %w", err)
	}
	return r.settings.Set(ctx, setting.KeyAccessRules, string(raw))
}
