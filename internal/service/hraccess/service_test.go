package hraccess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
)

type fakeRuleService struct {
	rules []rule.AccessRule
}

func (f *fakeRuleService) ListRules(ctx context.Context) ([]rule.AccessRule, error) {
	return f.rules, nil
}

func (f *fakeRuleService) SaveRules(ctx context.Context, req rule.SaveRulesRequest) ([]rule.AccessRule, error) {
	panic("not used")
}

func (f *fakeRuleService) EffectiveForUser(ctx context.Context, userID string) (rule.EffectiveRulesResponse, error) {
	panic("not used")
}

type fakeDirectory struct {
	ofUser  map[string][]string
	members map[string][]string
}

func (f *fakeDirectory) Exists(ctx context.Context, groupID string) (bool, error) {
	return true, nil
}

func (f *fakeDirectory) ExistingGroups(ctx context.Context, groupIDs []string) ([]string, error) {
	return groupIDs, nil
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

func newAccessFixture() rule.AccessService {
	rules := &fakeRuleService{rules: []rule.AccessRule{
		{ID: "r1", HRGroups: []string{"hr"}, UserGroups: []string{"staff", "sales"}},
		{ID: "r2", HRGroups: []string{"leads"}, UserGroups: []string{"support"}},
	}}
	dir := &fakeDirectory{
		ofUser: map[string][]string{
			"carol": {"hr"},
			"dave":  {"leads"},
			"alice": {"staff"},
			"bob":   {"sales"},
			"erin":  {"support"},
			"frank": {"guests"},
		},
		members: map[string][]string{
			"staff":   {"alice"},
			"sales":   {"bob"},
			"support": {"erin"},
		},
	}
	return NewAccessService(rules, dir)
}

func TestIsHR(t *testing.T) {
	svc := newAccessFixture()
	ctx := context.Background()

	isHR, err := svc.IsHR(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, isHR)

	isHR, err = svc.IsHR(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, isHR)
}

func TestAccessibleUsers(t *testing.T) {
	svc := newAccessFixture()
	ctx := context.Background()

	users, err := svc.AccessibleUsers(ctx, "carol")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)

	// dave only covers support
	users, err = svc.AccessibleUsers(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, []string{"erin"}, users)

	// non-HR users cover nobody
	users, err = svc.AccessibleUsers(ctx, "frank")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCanAccessUser(t *testing.T) {
	svc := newAccessFixture()
	ctx := context.Background()

	ok, err := svc.CanAccessUser(ctx, "carol", "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccessUser(ctx, "carol", "erin")
	require.NoError(t, err)
	assert.False(t, ok)

	// Self access always allowed.
	ok, err = svc.CanAccessUser(ctx, "frank", "frank")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccessUser(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}
