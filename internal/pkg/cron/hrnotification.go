package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/email"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/timeutil"
	"github.com/timesheet-hq/timesheet-backend-go/internal/service/hrnotify"
)

type HRNotificationJobs struct {
	evaluator    hrnotify.Evaluator
	emailService email.EmailService
	settings     setting.SettingRepository
}

func NewHRNotificationJobs(
	evaluator hrnotify.Evaluator,
	emailService email.EmailService,
	settings setting.SettingRepository,
) *HRNotificationJobs {
	return &HRNotificationJobs{
		evaluator:    evaluator,
		emailService: emailService,
		settings:     settings,
	}
}

func (j *HRNotificationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("hr_weekly_warnings", 1*time.Hour, j.SendWeeklyWarnings)
}

func (j *HRNotificationJobs) SendWeeklyWarnings(ctx context.Context) error {
	return j.run(ctx, time.Now().UTC())
}

// run delivers the weekly warning mails. Fires in the 06:00-06:59 UTC
// window on Mondays, or any day when the force flag is set. The last-run
// marker keeps the hourly tick from sending twice on the same day.
func (j *HRNotificationJobs) run(ctx context.Context, now time.Time) error {
	if now.Hour() != 6 {
		return nil
	}

	force, err := j.settings.Get(ctx, setting.KeyNotificationForce, "0")
	if err != nil {
		return fmt.Errorf("failed to read force flag: %w", err)
	}
	if timeutil.ISOWeekday(now) != 1 && force != "1" {
		return nil
	}

	today := now.Format("2006-01-02")
	lastRun, err := j.settings.Get(ctx, setting.KeyLastNotifyRun, "")
	if err != nil {
		return fmt.Errorf("failed to read last run marker: %w", err)
	}
	if lastRun == today {
		return nil
	}

	slog.Info("Cron: Starting HR warning delivery", "date", today)

	reports, err := j.evaluator.Evaluate(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to evaluate warnings: %w", err)
	}

	sent := 0
	for _, report := range reports {
		if report.Email == nil {
			slog.Warn("Cron: HR reviewer has no email address", "reviewer", report.ReviewerID)
			continue
		}

		if err := j.emailService.SendOversightReport(*report.Email, buildReportData(report, today)); err != nil {
			slog.Error("Cron: Failed to deliver HR warning mail", "reviewer", report.ReviewerID, "error", err)
			continue
		}
		sent++
	}

	if err := j.settings.Set(ctx, setting.KeyLastNotifyRun, today); err != nil {
		return fmt.Errorf("failed to store last run marker: %w", err)
	}
	if force == "1" {
		if err := j.settings.Set(ctx, setting.KeyNotificationForce, "0"); err != nil {
			return fmt.Errorf("failed to reset force flag: %w", err)
		}
	}

	slog.Info("Cron: HR warnings delivered", "reports", len(reports), "sent", sent)
	return nil
}

func buildReportData(report hrnotify.ReviewerReport, date string) email.OversightReportData {
	data := email.OversightReportData{
		ReviewerID: report.ReviewerID,
		Date:       date,
	}

	for _, f := range report.NoEntry {
		lastSeen := "never"
		if f.DaysSinceEntry != nil {
			lastSeen = fmt.Sprintf("%d days ago", *f.DaysSinceEntry)
		}
		data.NoEntry = append(data.NoEntry, email.NoEntryRow{UserID: f.UserID, LastSeen: lastSeen})
	}
	for _, f := range report.Overtime {
		data.Overtime = append(data.Overtime, email.BalanceRow{
			UserID:  f.UserID,
			Balance: timeutil.FormatHMSigned(f.OvertimeMinutes),
		})
	}
	for _, f := range report.Deficit {
		data.Deficit = append(data.Deficit, email.BalanceRow{
			UserID:  f.UserID,
			Balance: timeutil.FormatHMSigned(f.OvertimeMinutes),
		})
	}
	return data
}
