package rule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
)

// fakeRuleRepo keeps the rule set in memory.
type fakeRuleRepo struct {
	rules []rule.AccessRule
}

func (f *fakeRuleRepo) GetAll(ctx context.Context) ([]rule.AccessRule, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) ReplaceAll(ctx context.Context, rules []rule.AccessRule) error {
	f.rules = rules
	return nil
}

// fakeDirectory serves a fixed group/member layout.
type fakeDirectory struct {
	groups  map[string]bool
	ofUser  map[string][]string
	members map[string][]string
}

func (f *fakeDirectory) Exists(ctx context.Context, groupID string) (bool, error) {
	return f.groups[groupID], nil
}

func (f *fakeDirectory) ExistingGroups(ctx context.Context, groupIDs []string) ([]string, error) {
	var out []string
	for _, g := range groupIDs {
		if f.groups[g] {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeDirectory) GroupsOfUser(ctx context.Context, userID string) ([]string, error) {
	return f.ofUser[userID], nil
}

func (f *fakeDirectory) EmailOf(ctx context.Context, userID string) (*string, error) {
	return nil, nil
}

func (f *fakeDirectory) MembersOf(ctx context.Context, groupIDs []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, g := range groupIDs {
		for _, u := range f.members[g] {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func newTestDirectory() *fakeDirectory {
	return &fakeDirectory{
		groups: map[string]bool{"hr": true, "staff": true, "sales": true},
		ofUser: map[string][]string{
			"alice": {"staff"},
			"bob":   {"sales"},
			"carol": {"hr"},
		},
		members: map[string][]string{
			"staff": {"alice"},
			"sales": {"bob"},
			"hr":    {"carol"},
		},
	}
}

func TestSaveRules_SanitizesGroups(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewRuleService(repo, newTestDirectory())

	saved, err := svc.SaveRules(context.Background(), rule.SaveRulesRequest{
		Rules: []rule.RuleInput{
			{
				ID:         "r1",
				HRGroups:   []string{" hr ", "hr", "ghost"},
				UserGroups: []string{"staff", "", "  "},
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, []string{"hr"}, saved[0].HRGroups)
	assert.Equal(t, []string{"staff"}, saved[0].UserGroups)
	assert.Equal(t, rule.DefaultThresholds(), saved[0].Thresholds)
}

func TestSaveRules_GeneratesMissingIDs(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewRuleService(repo, newTestDirectory())

	saved, err := svc.SaveRules(context.Background(), rule.SaveRulesRequest{
		Rules: []rule.RuleInput{
			{HRGroups: []string{"hr"}, UserGroups: []string{"staff"}},
		},
	})

	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.NotEmpty(t, saved[0].ID)
}

func TestSaveRules_RejectsDuplicateSubjectGroups(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewRuleService(repo, newTestDirectory())

	_, err := svc.SaveRules(context.Background(), rule.SaveRulesRequest{
		Rules: []rule.RuleInput{
			{ID: "a", HRGroups: []string{"hr"}, UserGroups: []string{"staff", "sales"}},
			{ID: "b", HRGroups: []string{"hr"}, UserGroups: []string{"staff"}},
		},
	})

	require.Error(t, err)
	var dup *rule.DuplicateGroupsError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, []string{"staff"}, dup.Groups)
	assert.Empty(t, repo.rules, "rejected set must not be stored")
}

func TestEffectiveForUser(t *testing.T) {
	repo := &fakeRuleRepo{rules: []rule.AccessRule{
		{
			ID:         "staff-rule",
			HRGroups:   []string{"hr"},
			UserGroups: []string{"staff"},
			Thresholds: rule.Thresholds{MaxHours: 8, BreakShortMinutes: 30, BreakShortHours: 6, BreakLongMinutes: 45, BreakLongHours: 9, Priority: 2},
		},
	}}
	svc := NewRuleService(repo, newTestDirectory())

	got, err := svc.EffectiveForUser(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got.MatchedRuleID)
	assert.Equal(t, "staff-rule", *got.MatchedRuleID)
	assert.Equal(t, 8.0, got.Thresholds.MaxHours)

	// No rule matches bob: defaults, no matched rule.
	got, err = svc.EffectiveForUser(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, got.MatchedRuleID)
	assert.Equal(t, rule.DefaultThresholds(), got.Thresholds)
}

func TestListRules_DropsRulesWithoutID(t *testing.T) {
	repo := &fakeRuleRepo{rules: []rule.AccessRule{
		{ID: "", UserGroups: []string{"staff"}},
		{ID: "ok", UserGroups: []string{"sales"}},
	}}
	svc := NewRuleService(repo, newTestDirectory())

	got, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}
