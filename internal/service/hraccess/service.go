package hraccess

import (
	"context"
	"fmt"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/group"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
)

type AccessServiceImpl struct {
	ruleService rule.RuleService
	groupDir    group.Directory
}

func NewAccessService(ruleService rule.RuleService, groupDir group.Directory) rule.AccessService {
	return &AccessServiceImpl{
		ruleService: ruleService,
		groupDir:    groupDir,
	}
}

// IsHR implements rule.AccessService.
func (s *AccessServiceImpl) IsHR(ctx context.Context, userID string) (bool, error) {
	covered, err := s.coveredGroups(ctx, userID)
	if err != nil {
		return false, err
	}
	return covered != nil, nil
}

// AccessibleUsers implements rule.AccessService.
func (s *AccessServiceImpl) AccessibleUsers(ctx context.Context, hrUserID string) ([]string, error) {
	covered, err := s.coveredGroups(ctx, hrUserID)
	if err != nil {
		return nil, err
	}
	if len(covered) == 0 {
		return nil, nil
	}

	members, err := s.groupDir.MembersOf(ctx, covered)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}
	return members, nil
}

// CanAccessUser implements rule.AccessService.
func (s *AccessServiceImpl) CanAccessUser(ctx context.Context, hrUserID, targetID string) (bool, error) {
	if hrUserID == targetID {
		return true, nil
	}

	covered, err := s.coveredGroups(ctx, hrUserID)
	if err != nil {
		return false, err
	}
	if len(covered) == 0 {
		return false, nil
	}

	targetGroups, err := s.groupDir.GroupsOfUser(ctx, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to load groups of user %s: %w", targetID, err)
	}

	coveredSet := make(map[string]bool, len(covered))
	for _, g := range covered {
		coveredSet[g] = true
	}
	for _, g := range targetGroups {
		if coveredSet[g] {
			return true, nil
		}
	}
	return false, nil
}

// coveredGroups returns the subject groups of every rule whose HR
// groups intersect the user's groups, deduplicated. Nil when the user
// is not an HR reviewer under any rule; non-nil (possibly empty) when
// at least one rule names them as HR.
func (s *AccessServiceImpl) coveredGroups(ctx context.Context, userID string) ([]string, error) {
	rules, err := s.ruleService.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	userGroups, err := s.groupDir.GroupsOfUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups of user %s: %w", userID, err)
	}

	groupSet := make(map[string]bool, len(userGroups))
	for _, g := range userGroups {
		groupSet[g] = true
	}

	var covered []string
	matched := false
	seen := make(map[string]bool)
	for _, r := range rules {
		isReviewer := false
		for _, g := range r.HRGroups {
			if groupSet[g] {
				isReviewer = true
				break
			}
		}
		if !isReviewer {
			continue
		}
		matched = true
		for _, g := range r.UserGroups {
			if !seen[g] {
				seen[g] = true
				covered = append(covered, g)
			}
		}
	}

	if !matched {
		return nil, nil
	}
	if covered == nil {
		covered = []string{}
	}
	return covered, nil
}
