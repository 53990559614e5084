package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/email"
	"github.com/timesheet-hq/timesheet-backend-go/internal/service/hrnotify"
)

type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) Get(_ context.Context, key, fallback string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeEvaluator struct {
	reports []hrnotify.ReviewerReport
	calls   int
}

func (f *fakeEvaluator) Evaluate(_ context.Context, _ time.Time) ([]hrnotify.ReviewerReport, error) {
	f.calls++
	return f.reports, nil
}

type fakeMailer struct {
	sent []email.OversightReportData
	to   []string
}

func (f *fakeMailer) SendOversightReport(to string, data email.OversightReportData) error {
	f.to = append(f.to, to)
	f.sent = append(f.sent, data)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestSendWeeklyWarnings_MondayMorningDelivers(t *testing.T) {
	settings := newFakeSettings()
	evaluator := &fakeEvaluator{reports: []hrnotify.ReviewerReport{
		{
			ReviewerID: "alice",
			Email:      strPtr("alice@example.com"),
			NoEntry:    []hrnotify.Finding{{UserID: "bob", DaysSinceEntry: intPtr(20)}},
			Overtime:   []hrnotify.Finding{{UserID: "carol", OvertimeMinutes: 750}},
			Deficit:    []hrnotify.Finding{{UserID: "dave", OvertimeMinutes: -660}},
		},
	}}
	mailer := &fakeMailer{}
	jobs := NewHRNotificationJobs(evaluator, mailer, settings)

	err := jobs.run(context.Background(), mustParse(t, "2026-09-07 06:15"))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, mailer.to)
	assert.Equal(t, "2026-09-07", mailer.sent[0].Date)
	require.Len(t, mailer.sent[0].NoEntry, 1)
	assert.Equal(t, "20 days ago", mailer.sent[0].NoEntry[0].LastSeen)
	require.Len(t, mailer.sent[0].Overtime, 1)
	assert.Equal(t, "+12:30", mailer.sent[0].Overtime[0].Balance)
	require.Len(t, mailer.sent[0].Deficit, 1)
	assert.Equal(t, "-11:00", mailer.sent[0].Deficit[0].Balance)

	assert.Equal(t, "2026-09-07", settings.values[setting.KeyLastNotifyRun])
}

func TestSendWeeklyWarnings_SkipsOutsideMorningWindow(t *testing.T) {
	evaluator := &fakeEvaluator{}
	jobs := NewHRNotificationJobs(evaluator, &fakeMailer{}, newFakeSettings())

	err := jobs.run(context.Background(), mustParse(t, "2026-09-07 12:00"))
	require.NoError(t, err)
	assert.Zero(t, evaluator.calls)
}

func TestSendWeeklyWarnings_SkipsNonMonday(t *testing.T) {
	evaluator := &fakeEvaluator{}
	jobs := NewHRNotificationJobs(evaluator, &fakeMailer{}, newFakeSettings())

	err := jobs.run(context.Background(), mustParse(t, "2026-09-01 06:00"))
	require.NoError(t, err)
	assert.Zero(t, evaluator.calls)
}

func TestSendWeeklyWarnings_ForceFlagOverridesMondayGate(t *testing.T) {
	settings := newFakeSettings()
	settings.values[setting.KeyNotificationForce] = "1"
	evaluator := &fakeEvaluator{}
	jobs := NewHRNotificationJobs(evaluator, &fakeMailer{}, settings)

	err := jobs.run(context.Background(), mustParse(t, "2026-09-01 06:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, evaluator.calls)
	assert.Equal(t, "0", settings.values[setting.KeyNotificationForce])
}

func TestSendWeeklyWarnings_RunsOncePerDay(t *testing.T) {
	settings := newFakeSettings()
	evaluator := &fakeEvaluator{}
	jobs := NewHRNotificationJobs(evaluator, &fakeMailer{}, settings)

	require.NoError(t, jobs.run(context.Background(), mustParse(t, "2026-09-07 06:00")))
	require.NoError(t, jobs.run(context.Background(), mustParse(t, "2026-09-07 06:30")))
	assert.Equal(t, 1, evaluator.calls)
}

func TestSendWeeklyWarnings_SkipsReviewerWithoutEmail(t *testing.T) {
	settings := newFakeSettings()
	evaluator := &fakeEvaluator{reports: []hrnotify.ReviewerReport{
		{ReviewerID: "ghost", NoEntry: []hrnotify.Finding{{UserID: "bob"}}},
	}}
	mailer := &fakeMailer{}
	jobs := NewHRNotificationJobs(evaluator, mailer, settings)

	err := jobs.run(context.Background(), mustParse(t, "2026-09-07 06:00"))
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
	assert.Equal(t, "2026-09-07", settings.values[setting.KeyLastNotifyRun])
}

func TestBuildReportData_NeverLoggedShowsNever(t *testing.T) {
	data := buildReportData(hrnotify.ReviewerReport{
		ReviewerID: "alice",
		NoEntry:    []hrnotify.Finding{{UserID: "frank"}},
	}, "2026-09-07")

	require.Len(t, data.NoEntry, 1)
	assert.Equal(t, "never", data.NoEntry[0].LastSeen)
}
