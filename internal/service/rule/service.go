package rule

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/group"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
)

type RuleServiceImpl struct {
	rule.RuleRepository
	groupDir group.Directory
}

func NewRuleService(ruleRepo rule.RuleRepository, groupDir group.Directory) rule.RuleService {
	return &RuleServiceImpl{
		RuleRepository: ruleRepo,
		groupDir:       groupDir,
	}
}

// ListRules implements rule.RuleService.
func (s *RuleServiceImpl) ListRules(ctx context.Context) ([]rule.AccessRule, error) {
	stored, err := s.RuleRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load access rules: %w", err)
	}

	// Stored rules are sanitized at save time; drop anything a manual
	// edit of the setting may have broken.
	out := make([]rule.AccessRule, 0, len(stored))
	for _, r := range stored {
		if r.ID == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// SaveRules implements rule.RuleService.
func (s *RuleServiceImpl) SaveRules(ctx context.Context, req rule.SaveRulesRequest) ([]rule.AccessRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rules := make([]rule.AccessRule, 0, len(req.Rules))
	for _, in := range req.Rules {
		hrGroups, err := s.sanitizeGroups(ctx, in.HRGroups)
		if err != nil {
			return nil, err
		}
		userGroups, err := s.sanitizeGroups(ctx, in.UserGroups)
		if err != nil {
			return nil, err
		}

		id := strings.TrimSpace(in.ID)
		if id == "" {
			id = uuid.NewString()
		}

		rules = append(rules, rule.AccessRule{
			ID:         id,
			HRGroups:   hrGroups,
			UserGroups: userGroups,
			Thresholds: in.Thresholds.Normalize(),
		})
	}

	if dupes := duplicateSubjectGroups(rules); len(dupes) > 0 {
		return nil, &rule.DuplicateGroupsError{Groups: dupes}
	}

	if err := s.RuleRepository.ReplaceAll(ctx, rules); err != nil {
		return nil, fmt.Errorf("failed to store access rules: %w", err)
	}

	return rules, nil
}

// EffectiveForUser implements rule.RuleService.
func (s *RuleServiceImpl) EffectiveForUser(ctx context.Context, userID string) (rule.EffectiveRulesResponse, error) {
	rules, err := s.ListRules(ctx)
	if err != nil {
		return rule.EffectiveRulesResponse{}, err
	}

	userGroups, err := s.groupDir.GroupsOfUser(ctx, userID)
	if err != nil {
		return rule.EffectiveRulesResponse{}, fmt.Errorf("failed to load groups of user %s: %w", userID, err)
	}

	thresholds, matchedID := rule.Resolve(rules, userGroups)
	return rule.EffectiveRulesResponse{
		UserID:        userID,
		Thresholds:    thresholds,
		MatchedRuleID: matchedID,
	}, nil
}

// sanitizeGroups trims, deduplicates and drops group names unknown to
// the directory, preserving input order.
func (s *RuleServiceImpl) sanitizeGroups(ctx context.Context, groups []string) ([]string, error) {
	cleaned := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		cleaned = append(cleaned, g)
	}

	existing, err := s.groupDir.ExistingGroups(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to check groups against directory: %w", err)
	}
	return existing, nil
}

// duplicateSubjectGroups returns the user groups assigned to more than
// one rule, sorted for stable error messages.
func duplicateSubjectGroups(rules []rule.AccessRule) []string {
	count := make(map[string]int)
	for _, r := range rules {
		for _, g := range r.UserGroups {
			count[g]++
		}
	}

	var dupes []string
	for g, n := range count {
		if n > 1 {
			dupes = append(dupes, g)
		}
	}
	sort.Strings(dupes)
	return dupes
}
