package overtime

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/overtime"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/holiday"
)

type OvertimeServiceImpl struct {
	entry.EntryRepository
	userconfig.UserConfigRepository
	setting.SettingRepository
	accessService rule.AccessService
	holidaySource holiday.Source
}

func NewOvertimeService(
	entryRepo entry.EntryRepository,
	configRepo userconfig.UserConfigRepository,
	settingRepo setting.SettingRepository,
	accessService rule.AccessService,
	holidaySource holiday.Source,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		EntryRepository:      entryRepo,
		UserConfigRepository: configRepo,
		SettingRepository:    settingRepo,
		accessService:        accessService,
		holidaySource:        holidaySource,
	}
}

// Summary implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Summary(ctx context.Context, userID string) (overtime.SummaryResponse, error) {
	cache := holiday.NewCache(s.holidaySource)
	summary, err := s.summarize(ctx, userID, cache)
	if err != nil {
		return overtime.SummaryResponse{}, err
	}
	return overtime.ToSummaryResponse(summary), nil
}

// HRUserList implements overtime.OvertimeService. One holiday cache is
// shared across all rows of the run.
func (s *OvertimeServiceImpl) HRUserList(ctx context.Context, hrUserID string) ([]overtime.HRUserRowResponse, error) {
	users, err := s.accessService.AccessibleUsers(ctx, hrUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accessible users: %w", err)
	}

	lastDates, err := s.EntryRepository.LastEntryDates(ctx, users)
	if err != nil {
		return nil, fmt.Errorf("failed to load last entry dates: %w", err)
	}

	cache := holiday.NewCache(s.holidaySource)
	rows := make([]overtime.HRUserRowResponse, 0, len(users))
	for _, userID := range users {
		summary, err := s.summarize(ctx, userID, cache)
		if err != nil {
			return nil, err
		}

		row := overtime.HRUserRow{
			UserID:          userID,
			OvertimeMinutes: summary.OvertimeMinutes,
			Workdays:        summary.Workdays,
			TotalMinutes:    summary.TotalMinutes,
		}
		if d, ok := lastDates[userID]; ok {
			row.LastEntryDate = &d
		}
		rows = append(rows, overtime.ToHRUserRowResponse(row))
	}
	return rows, nil
}

// summarize aggregates one user's entries, falling back to an empty
// balance dated today when they have no complete entries.
func (s *OvertimeServiceImpl) summarize(ctx context.Context, userID string, cache holiday.Source) (overtime.Summary, error) {
	cfg, err := s.loadConfig(ctx, userID)
	if err != nil {
		return overtime.Summary{}, err
	}

	entries, err := s.EntryRepository.ListByUser(ctx, userID)
	if err != nil {
		return overtime.Summary{}, fmt.Errorf("failed to load entries of user %s: %w", userID, err)
	}

	excludeSpecial, err := s.specialDaysEnabled(ctx)
	if err != nil {
		return overtime.Summary{}, err
	}

	var holidays map[string]string
	if excludeSpecial && cfg.State != nil {
		holidays, err = s.holidaysForEntries(ctx, cache, entries, *cfg.State)
		if err != nil {
			return overtime.Summary{}, err
		}
	}

	agg := AggregateEntries(entries, cfg.WorkMinutes, excludeSpecial, holidays)
	if agg == nil {
		today := time.Now().Format("2006-01-02")
		return overtime.Summary{
			UserID:      userID,
			From:        today,
			To:          today,
			DailyTarget: cfg.WorkMinutes,
		}, nil
	}

	return overtime.Summary{
		UserID:          userID,
		From:            agg.From,
		To:              agg.To,
		TotalMinutes:    agg.TotalMinutes,
		Workdays:        agg.Workdays,
		OvertimeMinutes: agg.OvertimeMinutes,
		DailyTarget:     cfg.WorkMinutes,
	}, nil
}

func (s *OvertimeServiceImpl) loadConfig(ctx context.Context, userID string) (userconfig.UserConfig, error) {
	stored, err := s.UserConfigRepository.GetByUser(ctx, userID)
	if err != nil {
		return userconfig.UserConfig{}, fmt.Errorf("failed to load config of user %s: %w", userID, err)
	}
	if stored == nil {
		return userconfig.DefaultConfig(userID), nil
	}
	return *stored, nil
}

func (s *OvertimeServiceImpl) specialDaysEnabled(ctx context.Context) (bool, error) {
	v, err := s.SettingRepository.Get(ctx, setting.KeySpecialDaysCheck, "0")
	if err != nil {
		return false, fmt.Errorf("failed to load special days setting: %w", err)
	}
	return v == "1", nil
}

// holidaysForEntries merges the holiday sets of every year the entries
// touch.
func (s *OvertimeServiceImpl) holidaysForEntries(ctx context.Context, cache holiday.Source, entries []entry.Entry, state string) (map[string]string, error) {
	years := make(map[int]bool)
	for _, e := range entries {
		if !e.Complete() || len(e.WorkDate) < 4 {
			continue
		}
		year, err := strconv.Atoi(e.WorkDate[:4])
		if err != nil {
			continue
		}
		years[year] = true
	}

	merged := make(map[string]string)
	for year := range years {
		set, err := cache.Holidays(ctx, year, state)
		if err != nil {
			return nil, fmt.Errorf("failed to load holidays for %d/%s: %w", year, state, err)
		}
		for date, name := range set {
			merged[date] = name
		}
	}
	return merged, nil
}
