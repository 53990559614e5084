package entry

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
)

func strPtr(s string) *string { return &s }

// authedCtx builds a context carrying a verified token for userID.
func authedCtx(t *testing.T, userID string, groups []string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"groups":  groups,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

// fakeEntryRepo is an in-memory EntryRepository.
type fakeEntryRepo struct {
	nextID  int64
	entries map[int64]entry.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{nextID: 1, entries: map[int64]entry.Entry{}}
}

func (f *fakeEntryRepo) Create(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	e.ID = f.nextID
	f.nextID++
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeEntryRepo) GetByID(ctx context.Context, id int64) (entry.Entry, error) {
	if e, ok := f.entries[id]; ok {
		return e, nil
	}
	return entry.Entry{}, entry.ErrEntryNotFound
}

func (f *fakeEntryRepo) GetByUserAndDate(ctx context.Context, userID, workDate string) (*entry.Entry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.WorkDate == workDate {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) ListByRange(ctx context.Context, userID, from, to string) ([]entry.Entry, error) {
	var out []entry.Entry
	for _, e := range f.entries {
		if e.UserID == userID && e.WorkDate >= from && e.WorkDate <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) ListByUser(ctx context.Context, userID string) ([]entry.Entry, error) {
	var out []entry.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, e entry.Entry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakeEntryRepo) Delete(ctx context.Context, id int64) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeEntryRepo) LastEntryDates(ctx context.Context, userIDs []string) (map[string]string, error) {
	return nil, nil
}

type fakeConfigRepo struct{}

func (f *fakeConfigRepo) GetByUser(ctx context.Context, userID string) (*userconfig.UserConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepo) GetByUsers(ctx context.Context, userIDs []string) (map[string]userconfig.UserConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepo) Upsert(ctx context.Context, c userconfig.UserConfig) (userconfig.UserConfig, error) {
	panic("not used")
}

type fakeSettingRepo struct{}

func (f *fakeSettingRepo) Get(ctx context.Context, key, fallback string) (string, error) {
	return fallback, nil
}

func (f *fakeSettingRepo) Set(ctx context.Context, key, value string) error { return nil }

type fakeRuleService struct{}

func (f *fakeRuleService) ListRules(ctx context.Context) ([]rule.AccessRule, error) { return nil, nil }

func (f *fakeRuleService) SaveRules(ctx context.Context, req rule.SaveRulesRequest) ([]rule.AccessRule, error) {
	panic("not used")
}

func (f *fakeRuleService) EffectiveForUser(ctx context.Context, userID string) (rule.EffectiveRulesResponse, error) {
	return rule.EffectiveRulesResponse{UserID: userID, Thresholds: rule.DefaultThresholds()}, nil
}

type fakeAccess struct {
	allowed map[string][]string
}

func (f *fakeAccess) IsHR(ctx context.Context, userID string) (bool, error) {
	return len(f.allowed[userID]) > 0, nil
}

func (f *fakeAccess) AccessibleUsers(ctx context.Context, hrUserID string) ([]string, error) {
	return f.allowed[hrUserID], nil
}

func (f *fakeAccess) CanAccessUser(ctx context.Context, hrUserID, targetID string) (bool, error) {
	if hrUserID == targetID {
		return true, nil
	}
	for _, u := range f.allowed[hrUserID] {
		if u == targetID {
			return true, nil
		}
	}
	return false, nil
}

type fakeHolidaySource struct{}

func (f *fakeHolidaySource) Holidays(ctx context.Context, year int, state string) (map[string]string, error) {
	return nil, nil
}

func newService(repo *fakeEntryRepo) entry.EntryService {
	return NewEntryService(repo, &fakeConfigRepo{}, &fakeSettingRepo{}, &fakeRuleService{}, &fakeAccess{allowed: map[string][]string{"carol": {"alice"}}}, &fakeHolidaySource{})
}

func TestCreateEntry(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)
	ctx := authedCtx(t, "alice", []string{"staff"})

	got, err := svc.CreateEntry(ctx, entry.SaveEntryRequest{
		WorkDate:     "2026-09-01",
		Start:        strPtr("09:00"),
		End:          strPtr("17:30"),
		BreakMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	require.NotNil(t, got.WorkedMinutes)
	assert.Equal(t, 480, *got.WorkedMinutes)
	assert.Equal(t, "08:00", got.Worked)
	assert.Empty(t, got.Violations)
}

func TestCreateEntry_RejectsDuplicateDate(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)
	ctx := authedCtx(t, "alice", []string{"staff"})

	req := entry.SaveEntryRequest{WorkDate: "2026-09-01", Start: strPtr("09:00"), End: strPtr("17:00")}
	_, err := svc.CreateEntry(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateEntry(ctx, req)
	assert.ErrorIs(t, err, entry.ErrDuplicateEntry)
}

func TestCreateEntry_RejectsOneSidedSpan(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)
	ctx := authedCtx(t, "alice", []string{"staff"})

	_, err := svc.CreateEntry(ctx, entry.SaveEntryRequest{
		WorkDate: "2026-09-01",
		Start:    strPtr("09:00"),
	})

	assert.Error(t, err)
}

func TestListEntries_DecoratesViolations(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)
	ctx := authedCtx(t, "alice", []string{"staff"})

	// Sunday 2026-09-06, short break on a 7h day.
	_, err := svc.CreateEntry(ctx, entry.SaveEntryRequest{
		WorkDate:     "2026-09-06",
		Start:        strPtr("09:00"),
		End:          strPtr("16:20"),
		BreakMinutes: 20,
	})
	require.NoError(t, err)

	got, err := svc.ListEntries(ctx, entry.ListEntriesFilter{From: "2026-09-01", To: "2026-09-07"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{rule.ViolationBreakTooShort, rule.ViolationSundayWorkNotAllowed}, got[0].Violations)
}

func TestListEntries_HRAccess(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)

	aliceCtx := authedCtx(t, "alice", []string{"staff"})
	_, err := svc.CreateEntry(aliceCtx, entry.SaveEntryRequest{
		WorkDate: "2026-09-01", Start: strPtr("09:00"), End: strPtr("17:00"), BreakMinutes: 30,
	})
	require.NoError(t, err)

	// carol oversees alice
	carolCtx := authedCtx(t, "carol", []string{"hr"})
	got, err := svc.ListEntries(carolCtx, entry.ListEntriesFilter{UserID: "alice", From: "2026-09-01", To: "2026-09-01"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// bob does not
	bobCtx := authedCtx(t, "bob", []string{"sales"})
	_, err = svc.ListEntries(bobCtx, entry.ListEntriesFilter{UserID: "alice", From: "2026-09-01", To: "2026-09-01"})
	assert.ErrorIs(t, err, entry.ErrUnauthorized)
}

func TestUpdateEntry_OwnershipEnforced(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)

	aliceCtx := authedCtx(t, "alice", []string{"staff"})
	created, err := svc.CreateEntry(aliceCtx, entry.SaveEntryRequest{
		WorkDate: "2026-09-01", Start: strPtr("09:00"), End: strPtr("17:00"), BreakMinutes: 30,
	})
	require.NoError(t, err)

	bobCtx := authedCtx(t, "bob", []string{"sales"})
	_, err = svc.UpdateEntry(bobCtx, entry.SaveEntryRequest{
		ID: created.ID, WorkDate: "2026-09-01", Start: strPtr("10:00"), End: strPtr("18:00"),
	})
	assert.ErrorIs(t, err, entry.ErrUnauthorized)

	updated, err := svc.UpdateEntry(aliceCtx, entry.SaveEntryRequest{
		ID: created.ID, WorkDate: "2026-09-01", Start: strPtr("10:00"), End: strPtr("18:00"), BreakMinutes: 45,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WorkedMinutes)
	assert.Equal(t, 435, *updated.WorkedMinutes)
}

func TestDeleteEntry(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)
	ctx := authedCtx(t, "alice", []string{"staff"})

	created, err := svc.CreateEntry(ctx, entry.SaveEntryRequest{
		WorkDate: "2026-09-01", Start: strPtr("09:00"), End: strPtr("17:00"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEntry(context.Background(), "bob", created.ID), entry.ErrUnauthorized)
	require.NoError(t, svc.DeleteEntry(context.Background(), "alice", created.ID))
	assert.ErrorIs(t, svc.DeleteEntry(context.Background(), "alice", created.ID), entry.ErrEntryNotFound)
}

func TestUpsertComment(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newService(repo)

	// Creates a time-less entry when none exists.
	got, err := svc.UpsertComment(context.Background(), "alice", "2026-09-01", "sick day")
	require.NoError(t, err)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "sick day", *got.Comment)
	assert.Nil(t, got.WorkedMinutes)
	assert.Equal(t, "--:--", got.Worked)

	// Updates the comment in place on a second call.
	got, err = svc.UpsertComment(context.Background(), "alice", "2026-09-01", "recovered")
	require.NoError(t, err)
	assert.Equal(t, "recovered", *got.Comment)

	entries, err := repo.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
